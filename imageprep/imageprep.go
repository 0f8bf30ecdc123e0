// Package imageprep resizes and normalizes page/region bitmaps into
// the float32 tensors the layout detector and TableFormer encoders
// expect, built on disintegration/imaging for the resize step.
package imageprep

import (
	"image"

	"github.com/disintegration/imaging"
)

// Layout selects how a resized image's channels are laid out in the
// returned tensor.
type Layout int

const (
	// HWC lays out height-major, then width, then channel (RGB).
	HWC Layout = iota
	// CHW lays out channel-major, then height, then width — the NCHW
	// convention layout-model backends (ONNX graphs) typically expect
	// once a batch dimension is added by the caller.
	CHW
)

// ToTensor resizes img to size x size with Lanczos resampling and
// returns it as a /255-normalized float32 tensor in the given layout.
func ToTensor(img image.Image, size int, layout Layout) []float32 {
	resized := imaging.Resize(img, size, size, imaging.Lanczos)
	bounds := resized.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := make([]float32, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rf := float32(r>>8) / 255
			gf := float32(g>>8) / 255
			bf := float32(b>>8) / 255
			switch layout {
			case CHW:
				out[0*w*h+y*w+x] = rf
				out[1*w*h+y*w+x] = gf
				out[2*w*h+y*w+x] = bf
			default:
				idx := (y*w + x) * 3
				out[idx] = rf
				out[idx+1] = gf
				out[idx+2] = bf
			}
		}
	}
	return out
}

// CropAndResize crops img to region then resizes to size x size,
// returning an HWC /255-normalized tensor — the TableFormer encoder's
// input convention for a table crop.
func CropAndResize(img image.Image, region image.Rectangle, size int) []float32 {
	cropped := imaging.Crop(img, region)
	return ToTensor(cropped, size, HWC)
}
