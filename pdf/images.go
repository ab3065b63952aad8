package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/filter"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// CompressWithPDFCPU rewrites inFile to outFile, recompressing every
// embedded raster image it can decode. Each image is downsampled to the
// target DPI and re-encoded as a JPEG at the preset quality; a stream is
// only replaced when the recompressed version is smaller. The rewritten
// document gets a final optimize pass for stream compression and
// duplicate-object removal. Returns the number of images replaced.
func CompressWithPDFCPU(inFile, outFile string, quality Quality, dpi int) (int, error) {
	ctx, err := api.ReadContextFile(inFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %v", err)
	}

	jpegQuality := PresetFor(quality).JPEGQuality
	replaced := 0

	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}

		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}

		img, ok := decodeImageStream(&sd)
		if !ok {
			continue
		}

		b := img.Bounds()
		img = downsample(img, scaleForDPI(b.Dx(), b.Dy(), dpi))

		data, err := encodeJPEG(img, jpegQuality)
		if err != nil || len(data) >= len(sd.Raw) {
			// Keep the original stream when recompression does not help.
			continue
		}

		entry.Object = newJPEGStreamDict(data, img.Bounds().Dx(), img.Bounds().Dy())
		replaced++
	}

	tmpFile := outFile + ".tmp"
	if err := api.WriteContextFile(ctx, tmpFile); err != nil {
		os.Remove(tmpFile)
		return 0, fmt.Errorf("failed to write PDF: %v", err)
	}
	defer os.Remove(tmpFile)

	if err := api.OptimizeFile(tmpFile, outFile, model.NewDefaultConfiguration()); err != nil {
		return 0, fmt.Errorf("pdfcpu optimize failed: %v", err)
	}

	return replaced, nil
}

// decodeImageStream extracts the pixel data of an image XObject stream.
// Only DCTDecode JPEGs and 8-bit DeviceRGB/DeviceGray Flate streams are
// handled; everything else is reported as undecodable and left untouched
// by the caller.
func decodeImageStream(sd *types.StreamDict) (image.Image, bool) {
	d := sd.Dict

	if st := d.Subtype(); st == nil || *st != "Image" {
		return nil, false
	}
	if im := d.BooleanEntry("ImageMask"); im != nil && *im {
		return nil, false
	}
	// Soft-masked images carry transparency this engine cannot preserve.
	if o, found := d.Find("SMask"); found {
		if name, ok := o.(types.Name); !ok || name != "None" {
			return nil, false
		}
	}

	width, height := d.IntEntry("Width"), d.IntEntry("Height")
	if width == nil || height == nil || *width == 0 || *height == 0 {
		return nil, false
	}

	if isDCTEncoded(sd) {
		img, err := jpeg.Decode(bytes.NewReader(sd.Raw))
		if err != nil {
			return nil, false
		}
		return img, true
	}

	// Flate-compressed raw samples, 8 bits per component only.
	if bpc := d.IntEntry("BitsPerComponent"); bpc == nil || *bpc != 8 {
		return nil, false
	}
	colorSpace := d.NameEntry("ColorSpace")
	if colorSpace == nil {
		return nil, false
	}
	if err := sd.Decode(); err != nil {
		return nil, false
	}

	switch *colorSpace {
	case "DeviceRGB":
		return rawRGBImage(sd.Content, *width, *height)
	case "DeviceGray":
		return rawGrayImage(sd.Content, *width, *height)
	}
	return nil, false
}

// isDCTEncoded reports whether the stream holds a plain JPEG.
func isDCTEncoded(sd *types.StreamDict) bool {
	return len(sd.FilterPipeline) == 1 && sd.FilterPipeline[0].Name == filter.DCT
}

// newJPEGStreamDict wraps JPEG data in an image XObject stream.
func newJPEGStreamDict(data []byte, width, height int) types.StreamDict {
	length := int64(len(data))
	return types.StreamDict{
		Dict: types.Dict(map[string]types.Object{
			"Type":             types.Name("XObject"),
			"Subtype":          types.Name("Image"),
			"Width":            types.Integer(width),
			"Height":           types.Integer(height),
			"ColorSpace":       types.Name("DeviceRGB"),
			"BitsPerComponent": types.Integer(8),
			"Filter":           types.Name(filter.DCT),
			"Length":           types.Integer(len(data)),
		}),
		Raw:            data,
		StreamLength:   &length,
		FilterPipeline: []types.PDFFilter{{Name: filter.DCT}},
	}
}
