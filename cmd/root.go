// Package cmd implements the CLI commands for pdf_compressor using Cobra.
package cmd

import (
	"fmt"
	"os"

	"pdf_compressor/pdf"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	qualityStr string
	targetDPI  int
	engineStr  string
)

var rootCmd = &cobra.Command{
	Use:   "pdf_compressor <input.pdf>",
	Short: "pdf_compressor — shrink a PDF by recompressing its embedded images",
	Long: `pdf_compressor reduces the file size of a PDF by downsampling and
recompressing its embedded raster images.

Ghostscript is used when available (best results); otherwise an
in-process pdfcpu-based engine recompresses the images directly.

Examples:
  pdf_compressor document.pdf                     medium quality (default)
  pdf_compressor document.pdf -q high             high quality, larger file
  pdf_compressor document.pdf -q low -o small.pdf low quality, named output
  pdf_compressor document.pdf --dpi 120           custom target DPI
  pdf_compressor document.pdf --engine pdfcpu     force the in-process engine`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: <input>_compressed.pdf)")
	rootCmd.Flags().StringVarP(&qualityStr, "quality", "q", string(pdf.DefaultQuality), "Compression quality: high, medium or low")
	rootCmd.Flags().IntVar(&targetDPI, "dpi", 0, "Target image DPI (overrides the quality preset)")
	rootCmd.Flags().StringVar(&engineStr, "engine", string(pdf.EngineAuto), "Compression engine: auto, gs or pdfcpu")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompress(inFile string) error {
	quality, err := pdf.ParseQuality(qualityStr)
	if err != nil {
		return err
	}
	engine, err := pdf.ParseEngine(engineStr)
	if err != nil {
		return err
	}

	result, err := pdf.Compress(inFile, outputPath, pdf.Options{
		Quality: quality,
		DPI:     targetDPI,
		Engine:  engine,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Input:  %s (%s)\n", result.InputPath, pdf.FileSizeString(result.OriginalSize))
	fmt.Printf("Output: %s (%s)\n", result.OutputPath, pdf.FileSizeString(result.CompressedSize))
	fmt.Printf("Engine: %s\n", result.Engine)
	if result.Engine == pdf.EnginePDFCPU {
		fmt.Printf("Images recompressed: %d\n", result.ImagesRecompressed)
	}

	if result.Effective() {
		saved := result.OriginalSize - result.CompressedSize
		fmt.Printf("Saved:  %s (%.1f%%)\n", pdf.FileSizeString(saved), result.SavedPercent())
	} else {
		fmt.Println("The output is not smaller; the input may already be optimally compressed.")
	}

	return nil
}
