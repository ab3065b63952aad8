package pdf

import (
	"bytes"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// assumedPageInches is the page edge length assumed when estimating the
// effective resolution of an embedded image. Placement metadata is not
// tracked per image, so a full-width image on a letter/A4-sized page is
// the working assumption.
const assumedPageInches = 8.0

// scaleForDPI returns the factor (at most 1.0) by which an image must be
// scaled so its effective resolution does not exceed the target DPI.
func scaleForDPI(width, height, targetDPI int) float64 {
	longest := width
	if height > longest {
		longest = height
	}

	effectiveDPI := float64(longest) / assumedPageInches
	if effectiveDPI <= float64(targetDPI) {
		return 1.0
	}
	return float64(targetDPI) / effectiveDPI
}

// downsample scales img by the given factor using Catmull-Rom resampling.
// Factors of 1.0 or above return the image unchanged.
func downsample(img image.Image, factor float64) image.Image {
	if factor >= 1.0 {
		return img
	}

	b := img.Bounds()
	width := int(float64(b.Dx()) * factor)
	if width < 1 {
		width = 1
	}
	height := int(float64(b.Dy()) * factor)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Over, nil)
	return dst
}

// flattenToRGB composites img over a white background, discarding any
// transparency.
func flattenToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(dst, dst.Rect, image.NewUniform(color.White), image.Point{}, stddraw.Src)
	stddraw.Draw(dst, dst.Rect, img, b.Min, stddraw.Over)
	return dst
}

// encodeJPEG flattens img onto white and encodes it as a JPEG at the
// given quality.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattenToRGB(img), &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rawRGBImage builds an image from uncompressed 8-bit RGB samples.
func rawRGBImage(data []byte, width, height int) (image.Image, bool) {
	if len(data) < width*height*3 {
		return nil, false
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: data[i], G: data[i+1], B: data[i+2], A: 0xff})
		}
	}
	return img, true
}

// rawGrayImage builds an image from uncompressed 8-bit grayscale samples.
func rawGrayImage(data []byte, width, height int) (image.Image, bool) {
	if len(data) < width*height {
		return nil, false
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, data[:width*height])
	return img, true
}
