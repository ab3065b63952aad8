package pdf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Engine identifies a compression backend.
type Engine string

const (
	// EngineAuto picks Ghostscript when available, the in-process
	// engine otherwise.
	EngineAuto Engine = "auto"

	// EngineGhostscript forces the external gs binary.
	EngineGhostscript Engine = "gs"

	// EnginePDFCPU forces the in-process image recompression engine.
	EnginePDFCPU Engine = "pdfcpu"
)

// ParseEngine converts a user-supplied engine string into an Engine value.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case EngineAuto, EngineGhostscript, EnginePDFCPU:
		return e, nil
	}
	return "", fmt.Errorf("unknown engine %q (expected auto, gs or pdfcpu)", s)
}

// Options controls a single compression run.
type Options struct {
	Quality Quality // empty means DefaultQuality
	DPI     int     // 0 means the preset value
	Engine  Engine  // empty means EngineAuto
}

// Result describes one finished compression run.
type Result struct {
	InputPath  string
	OutputPath string

	OriginalSize   int64
	CompressedSize int64

	// Engine is the backend that produced the output, which may differ
	// from the requested one after a fallback.
	Engine Engine

	// ImagesRecompressed is only populated by the in-process engine.
	ImagesRecompressed int
}

// SavedPercent returns the size reduction as a percentage of the original.
func (r *Result) SavedPercent() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// Effective reports whether the output is actually smaller than the input.
func (r *Result) Effective() bool {
	return r.CompressedSize < r.OriginalSize
}

// hasGhostscript is swappable in tests.
var hasGhostscript = HasGhostscript

// Compress runs one compression pass over inFile and writes the result to
// outFile. An empty outFile derives the output path from the input path.
func Compress(inFile, outFile string, opts Options) (*Result, error) {
	info, err := os.Stat(inFile)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %v", err)
	}

	if outFile == "" {
		outFile = DeriveOutputPath(inFile)
	}
	if filepath.Clean(outFile) == filepath.Clean(inFile) {
		return nil, fmt.Errorf("output path must differ from input path: %s", inFile)
	}

	quality := opts.Quality
	if quality == "" {
		quality = DefaultQuality
	}
	if _, ok := presets[quality]; !ok {
		return nil, fmt.Errorf("unknown quality %q (expected high, medium or low)", quality)
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = PresetFor(quality).DPI
	}

	engine := opts.Engine
	if engine == "" {
		engine = EngineAuto
	}

	result := &Result{
		InputPath:    inFile,
		OutputPath:   outFile,
		OriginalSize: info.Size(),
	}

	switch engine {
	case EngineGhostscript:
		if !hasGhostscript() {
			return nil, fmt.Errorf("ghostscript (gs) not found on PATH")
		}
		if err := CompressWithGhostscript(inFile, outFile, quality, dpi); err != nil {
			return nil, err
		}
		result.Engine = EngineGhostscript

	case EnginePDFCPU:
		replaced, err := CompressWithPDFCPU(inFile, outFile, quality, dpi)
		if err != nil {
			return nil, err
		}
		result.Engine = EnginePDFCPU
		result.ImagesRecompressed = replaced

	case EngineAuto:
		if hasGhostscript() {
			err := CompressWithGhostscript(inFile, outFile, quality, dpi)
			if err == nil {
				result.Engine = EngineGhostscript
				break
			}
			log.Printf("Ghostscript failed: %v, falling back to in-process engine...", err)
		}
		replaced, err := CompressWithPDFCPU(inFile, outFile, quality, dpi)
		if err != nil {
			return nil, err
		}
		result.Engine = EnginePDFCPU
		result.ImagesRecompressed = replaced

	default:
		return nil, fmt.Errorf("unknown engine %q (expected auto, gs or pdfcpu)", engine)
	}

	out, err := os.Stat(outFile)
	if err != nil {
		return nil, fmt.Errorf("compression did not produce an output file: %v", err)
	}
	result.CompressedSize = out.Size()

	return result, nil
}
