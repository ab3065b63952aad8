package pdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CompressedSuffix is appended to the input stem when no output path is given.
const CompressedSuffix = "_compressed"

// DeriveOutputPath returns the default output path for an input file:
// the input stem plus CompressedSuffix, keeping directory and extension.
// The result never equals the input path.
func DeriveOutputPath(inFile string) string {
	ext := filepath.Ext(inFile)
	return strings.TrimSuffix(inFile, ext) + CompressedSuffix + ext
}

// FileSizeString formats a byte count for human consumption.
func FileSizeString(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
}
