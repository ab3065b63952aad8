package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	pdfPkg "pdf_compressor/pdf"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	pdfcpuapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// HandleCompress compresses an uploaded PDF and returns it as a download.
// Optional form fields: quality (high|medium|low), dpi, engine (auto|gs|pdfcpu).
func HandleCompress(c *gin.Context, config *Config) {
	opts, err := parseCompressOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handlePDFFile(c, config, func(inFile, outFile string) error {
		_, err := pdfPkg.Compress(inFile, outFile, opts)
		return err
	}, "compressed")
}

// HandleInfo reports basic facts about an uploaded PDF: page count, size
// and whether the Ghostscript engine is available on this host.
func HandleInfo(c *gin.Context, config *Config) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return
	}
	defer file.Close()

	if err := validatePDFFile(file, header.Size, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	inFile := filepath.Join(config.TempDir, "info_"+generateUniqueID()+".pdf")
	if err := saveUpload(file, inFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return
	}

	pageCount, err := pdfcpuapi.PageCountFile(inFile)
	if err != nil {
		os.Remove(inFile)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to read PDF: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":              header.Filename,
		"size":                  header.Size,
		"size_human":            pdfPkg.FileSizeString(header.Size),
		"page_count":            pageCount,
		"ghostscript_available": pdfPkg.HasGhostscript(),
	})

	// Clean up temp file after response is sent
	go func() {
		time.Sleep(FileCleanupDelay)
		os.Remove(inFile)
	}()
}

// parseCompressOptions reads the optional compression form fields.
func parseCompressOptions(c *gin.Context) (pdfPkg.Options, error) {
	opts := pdfPkg.Options{
		Quality: pdfPkg.DefaultQuality,
		Engine:  pdfPkg.EngineAuto,
	}

	if q := c.PostForm("quality"); q != "" {
		quality, err := pdfPkg.ParseQuality(q)
		if err != nil {
			return opts, err
		}
		opts.Quality = quality
	}

	if e := c.PostForm("engine"); e != "" {
		engine, err := pdfPkg.ParseEngine(e)
		if err != nil {
			return opts, err
		}
		opts.Engine = engine
	}

	if d := c.PostForm("dpi"); d != "" {
		dpi, err := strconv.Atoi(d)
		if err != nil || dpi <= 0 {
			return opts, fmt.Errorf("invalid dpi value: %s", d)
		}
		opts.DPI = dpi
	}

	return opts, nil
}

func handlePDFFile(c *gin.Context, config *Config, operation func(string, string) error, suffix string) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return
	}
	defer file.Close()

	// Validate PDF file
	if err := validatePDFFile(file, header.Size, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Create temp input file
	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	uniqueID := generateUniqueID()
	inFile := filepath.Join(config.TempDir, "input_"+uniqueID+".pdf")
	outFile := filepath.Join(config.TempDir, "output_"+uniqueID+"_"+suffix+".pdf")

	if err := saveUpload(file, inFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return
	}

	// Perform operation
	if err := operation(inFile, outFile); err != nil {
		os.Remove(inFile)
		if _, statErr := os.Stat(outFile); statErr == nil {
			os.Remove(outFile)
		}
		log.Printf("PDF operation error: %v", err)
		errorMsg := err.Error()
		if len(errorMsg) > 200 {
			errorMsg = errorMsg[:200] + "..."
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMsg})
		return
	}

	// Verify output file exists before sending
	if _, err := os.Stat(outFile); os.IsNotExist(err) {
		os.Remove(inFile)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF operation did not produce output file"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadFilename(header.Filename, suffix)))
	c.File(outFile)

	// Clean up temp files after response is sent to avoid race conditions
	go func() {
		time.Sleep(FileCleanupDelay)
		os.Remove(inFile)
		os.Remove(outFile)
	}()
}

// saveUpload writes an uploaded file to the given path.
func saveUpload(file io.Reader, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// downloadFilename derives the attachment filename from the uploaded name.
func downloadFilename(originalName, suffix string) string {
	filename := "document_" + suffix + ".pdf"
	if originalName != "" {
		if strings.HasSuffix(strings.ToLower(originalName), ".pdf") {
			filename = originalName[:len(originalName)-4] + "_" + suffix + ".pdf"
		} else {
			filename = originalName + "_" + suffix + ".pdf"
		}
	}
	return sanitizeFilename(filename)
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	// filepath.Base maps "" to "." and keeps "..", neither is a usable name
	if filename == "" || filename == "." || filename == ".." {
		filename = "document.pdf"
	}

	return filename
}

// generateUniqueID generates a unique identifier for temp files using
// UUID v7, which is time-ordered.
func generateUniqueID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return id.String()
}

// validatePDFFile checks the upload size and sniffs the file header for
// the PDF magic bytes.
func validatePDFFile(file io.ReadSeeker, size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", size, maxSize)
	}

	head := make([]byte, 261)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	kind, _ := filetype.Match(head[:n])
	if kind != matchers.TypePdf {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
