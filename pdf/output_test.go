package pdf

import "testing"

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/docs/report.pdf", "/docs/report_compressed.pdf"},
		{"scan.PDF", "scan_compressed.PDF"},
		{"noext", "noext_compressed"},
		{"dir.v2/file.pdf", "dir.v2/file_compressed.pdf"},
		{"already_compressed.pdf", "already_compressed_compressed.pdf"},
	}

	for _, test := range tests {
		got := DeriveOutputPath(test.input)
		if got != test.expected {
			t.Errorf("DeriveOutputPath(%s) = %s, expected %s", test.input, got, test.expected)
		}
		if got == test.input {
			t.Errorf("DeriveOutputPath(%s) collides with the input path", test.input)
		}
	}
}

func TestFileSizeString(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, test := range tests {
		got := FileSizeString(test.size)
		if got != test.expected {
			t.Errorf("FileSizeString(%d) = %s, expected %s", test.size, got, test.expected)
		}
	}
}
