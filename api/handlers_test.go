package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pdfPkg "pdf_compressor/pdf"

	"github.com/gin-gonic/gin"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "__etc_passwd"},
		{"dir/file.pdf", "dir_file.pdf"},
		{"dir\\file.pdf", "dir_file.pdf"},
		{"  spaced.pdf  ", "spaced.pdf"},
		{"", "document.pdf"},
		{".", "document.pdf"},
		{"..", "document.pdf"},
	}

	for _, test := range tests {
		got := sanitizeFilename(test.input)
		if got != test.expected {
			t.Errorf("sanitizeFilename(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		original string
		expected string
	}{
		{"report.pdf", "report_compressed.pdf"},
		{"Report.PDF", "Report_compressed.pdf"},
		{"scan", "scan_compressed.pdf"},
		{"", "document_compressed.pdf"},
	}

	for _, test := range tests {
		got := downloadFilename(test.original, "compressed")
		if got != test.expected {
			t.Errorf("downloadFilename(%q) = %q, expected %q", test.original, got, test.expected)
		}
	}
}

func TestValidatePDFFile(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		maxSize int64
		wantErr bool
	}{
		{"valid pdf", "%PDF-1.4\nsome content", 1024, false},
		{"not a pdf", "GIF89a not a pdf at all", 1024, true},
		{"empty file", "", 1024, true},
		{"oversized", "%PDF-1.4\nsome content", 4, true},
	}

	for _, test := range tests {
		r := bytes.NewReader([]byte(test.data))
		err := validatePDFFile(r, int64(len(test.data)), test.maxSize)
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestValidatePDFFileResetsPosition(t *testing.T) {
	data := []byte("%PDF-1.4\nsome content")
	r := bytes.NewReader(data)

	if err := validatePDFFile(r, int64(len(data)), 1024); err != nil {
		t.Fatal(err)
	}

	rest := make([]byte, 4)
	if _, err := r.Read(rest); err != nil {
		t.Fatal(err)
	}
	if string(rest) != "%PDF" {
		t.Errorf("read %q after validation, expected %q", rest, "%PDF")
	}
}

func TestParseCompressOptions(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    pdfPkg.Options
		wantErr bool
	}{
		{
			name: "defaults",
			form: url.Values{},
			want: pdfPkg.Options{Quality: pdfPkg.QualityMedium, Engine: pdfPkg.EngineAuto},
		},
		{
			name: "all fields",
			form: url.Values{"quality": {"low"}, "dpi": {"120"}, "engine": {"pdfcpu"}},
			want: pdfPkg.Options{Quality: pdfPkg.QualityLow, DPI: 120, Engine: pdfPkg.EnginePDFCPU},
		},
		{
			name:    "bad quality",
			form:    url.Values{"quality": {"ultra"}},
			wantErr: true,
		},
		{
			name:    "bad engine",
			form:    url.Values{"engine": {"mupdf"}},
			wantErr: true,
		},
		{
			name:    "bad dpi",
			form:    url.Values{"dpi": {"-5"}},
			wantErr: true,
		},
	}

	gin.SetMode(gin.TestMode)
	for _, test := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.form.Encode()))
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := parseCompressOptions(c)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: options = %+v, expected %+v", test.name, got, test.want)
		}
	}
}

func TestHandleCompressMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	config := &Config{MaxFileSize: 1024, TempDir: t.TempDir()}
	SetupRoutes(r, config)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/compress", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleInfoMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	config := &Config{MaxFileSize: 1024, TempDir: t.TempDir()}
	SetupRoutes(r, config)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/info", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusBadRequest)
	}
}
