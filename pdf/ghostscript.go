package pdf

import (
	"fmt"
	"os/exec"
	"strconv"
)

// The full path of the Ghostscript binary, resolved once at startup.
// Empty when Ghostscript is not installed.
var ghostscriptCommand, _ = exec.LookPath("gs")

// HasGhostscript reports whether the gs binary is available on PATH.
func HasGhostscript() bool {
	return ghostscriptCommand != ""
}

// GhostscriptArgs builds the gs argument list for one compression run.
// Images are downsampled with bicubic interpolation to the target DPI,
// and page auto-rotation is disabled so the layout survives unchanged.
func GhostscriptArgs(inFile, outFile string, quality Quality, dpi int) []string {
	preset := PresetFor(quality)
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.5",
		"-dPDFSETTINGS=/" + preset.GSSetting,
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dColorImageDownsampleType=/Bicubic",
		"-dColorImageResolution=" + strconv.Itoa(dpi),
		"-dGrayImageDownsampleType=/Bicubic",
		"-dGrayImageResolution=" + strconv.Itoa(dpi),
		"-dMonoImageResolution=" + strconv.Itoa(dpi),
		"-dAutoRotatePages=/None",
		"-sOutputFile=" + outFile,
		inFile,
	}
}

// CompressWithGhostscript compresses a PDF file using the Ghostscript CLI.
func CompressWithGhostscript(inFile, outFile string, quality Quality, dpi int) error {
	if !HasGhostscript() {
		return fmt.Errorf("ghostscript (gs) not found on PATH")
	}

	args := GhostscriptArgs(inFile, outFile, quality, dpi)
	output, err := execCommandWithTimeout(GhostscriptTimeout, ghostscriptCommand, args...)
	if err != nil {
		return fmt.Errorf("ghostscript failed: %v\nOutput: %s", err, string(output))
	}

	return nil
}
