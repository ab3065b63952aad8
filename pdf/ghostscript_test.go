package pdf

import (
	"reflect"
	"testing"
)

func TestGhostscriptArgs(t *testing.T) {
	args := GhostscriptArgs("in.pdf", "out.pdf", QualityMedium, 150)

	expected := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.5",
		"-dPDFSETTINGS=/ebook",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dColorImageDownsampleType=/Bicubic",
		"-dColorImageResolution=150",
		"-dGrayImageDownsampleType=/Bicubic",
		"-dGrayImageResolution=150",
		"-dMonoImageResolution=150",
		"-dAutoRotatePages=/None",
		"-sOutputFile=out.pdf",
		"in.pdf",
	}

	if !reflect.DeepEqual(args, expected) {
		t.Errorf("GhostscriptArgs() = %v, expected %v", args, expected)
	}
}

func TestGhostscriptArgsQualityPreset(t *testing.T) {
	tests := []struct {
		quality Quality
		setting string
	}{
		{QualityHigh, "-dPDFSETTINGS=/printer"},
		{QualityMedium, "-dPDFSETTINGS=/ebook"},
		{QualityLow, "-dPDFSETTINGS=/screen"},
	}

	for _, test := range tests {
		args := GhostscriptArgs("in.pdf", "out.pdf", test.quality, PresetFor(test.quality).DPI)
		if !containsArg(args, test.setting) {
			t.Errorf("GhostscriptArgs(%s) missing %s in %v", test.quality, test.setting, args)
		}
	}
}

func TestGhostscriptArgsDPIOverride(t *testing.T) {
	args := GhostscriptArgs("in.pdf", "out.pdf", QualityHigh, 120)

	for _, want := range []string{
		"-dColorImageResolution=120",
		"-dGrayImageResolution=120",
		"-dMonoImageResolution=120",
	} {
		if !containsArg(args, want) {
			t.Errorf("GhostscriptArgs() missing %s in %v", want, args)
		}
	}
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
