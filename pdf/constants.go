package pdf

import (
	"fmt"
	"strings"
)

// Quality identifies one of the documented compression levels.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"

	// DefaultQuality is applied when no quality is requested
	DefaultQuality = QualityMedium
)

// Preset holds the tuning values behind a quality level.
type Preset struct {
	// GSSetting is the Ghostscript -dPDFSETTINGS preset name
	GSSetting string

	// JPEGQuality is the lossy quality (0-100) for recompressed images
	JPEGQuality int

	// DPI is the target resolution for downsampled images
	DPI int
}

// presets maps each quality level to its documented tuning values
var presets = map[Quality]Preset{
	QualityHigh:   {GSSetting: "printer", JPEGQuality: 75, DPI: 300},
	QualityMedium: {GSSetting: "ebook", JPEGQuality: 55, DPI: 150},
	QualityLow:    {GSSetting: "screen", JPEGQuality: 35, DPI: 72},
}

// PresetFor returns the tuning values for a quality level.
func PresetFor(q Quality) Preset {
	return presets[q]
}

// ParseQuality converts a user-supplied quality string into a Quality value.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[q]; !ok {
		return "", fmt.Errorf("unknown quality %q (expected high, medium or low)", s)
	}
	return q, nil
}
