package bodypix

import (
	"fmt"
	"math"
)

// NumKeypoints is the number of skeleton keypoints a BodyPix model is
// trained with.  These are the 17 COCO body parts.
const NumKeypoints = 17

// Tensor is a single raw model output buffer in [Height,Width,Channels]
// layout, flattened row-major with the channel dimension last.  So element
// (y,x,c) lives at index (y*Width+x)*Channels + c.
type Tensor struct {
	Height   int
	Width    int
	Channels int
	// Data is the raw buffer values, read-only to this library
	Data []float32
}

// NewTensor wraps the raw buffer data in a Tensor after checking the data
// length matches the given dimensions
func NewTensor(height, width, channels int, data []float32) (Tensor, error) {

	if height <= 0 || width <= 0 || channels <= 0 {
		return Tensor{}, fmt.Errorf("invalid tensor dimensions [%d,%d,%d]",
			height, width, channels)
	}

	if len(data) != height*width*channels {
		return Tensor{}, fmt.Errorf("tensor data length %d does not match dimensions [%d,%d,%d], want %d",
			len(data), height, width, channels, height*width*channels)
	}

	return Tensor{
		Height:   height,
		Width:    width,
		Channels: channels,
		Data:     data,
	}, nil
}

// At returns the buffer value at cell (y,x) for the given channel.  Bounds
// are not checked, callers are expected to have clamped cell coordinates to
// the tensor dimensions.
func (t Tensor) At(y, x, channel int) float32 {
	return t.Data[(y*t.Width+x)*t.Channels+channel]
}

// Mask is a binary segmentation mask where 1 marks a foreground pixel
type Mask struct {
	Height int
	Width  int
	Data   []uint8
}

// NewMask wraps binary mask data after checking the data length matches the
// given dimensions
func NewMask(height, width int, data []uint8) (Mask, error) {

	if len(data) != height*width {
		return Mask{}, fmt.Errorf("mask data length %d does not match dimensions [%d,%d], want %d",
			len(data), height, width, height*width)
	}

	return Mask{
		Height: height,
		Width:  width,
		Data:   data,
	}, nil
}

// Padding is the number of pixels added around the source image, before
// resizing, to match the model input aspect ratio
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Outputs holds the raw output buffers a BodyPix model produces for one
// frame.  All buffers share the same strided grid dimensions.  Segmentation
// may be at a different resolution (typically the source image) and defines
// the coordinate space instance masks are produced in.
type Outputs struct {
	// Heatmap is the per-part confidence scores [H,W,NumKeypoints] with
	// sigmoid already applied so scores are in the range 0..1
	Heatmap Tensor
	// Offsets are the short range sub-cell correction vectors
	// [H,W,2*NumKeypoints], delta Y in channel k and delta X in channel
	// NumKeypoints+k
	Offsets Tensor
	// DisplacementsFwd are the parent to child displacement vectors for
	// each skeleton edge [H,W,2*(NumKeypoints-1)]
	DisplacementsFwd Tensor
	// DisplacementsBwd are the child to parent displacement vectors for
	// each skeleton edge [H,W,2*(NumKeypoints-1)]
	DisplacementsBwd Tensor
	// LongOffsets is the per-keypoint embedding field [H,W,2*NumKeypoints]
	// with the same paired channel layout as Offsets
	LongOffsets Tensor
	// Segmentation is the binary foreground mask
	Segmentation Mask
}

// Validate checks all output buffers have consistent shapes for a model
// trained with the given number of keypoint parts.  It returns an error
// naming the first mismatched dimension found.
func (o *Outputs) Validate(numKeypoints int) error {

	h := o.Heatmap.Height
	w := o.Heatmap.Width

	if o.Heatmap.Channels != numKeypoints {
		return fmt.Errorf("heatmap has %d channels, want %d",
			o.Heatmap.Channels, numKeypoints)
	}

	if o.Offsets.Channels != 2*numKeypoints {
		return fmt.Errorf("offsets has %d channels, want %d",
			o.Offsets.Channels, 2*numKeypoints)
	}

	if numKeypoints > 1 && o.DisplacementsFwd.Channels != 2*(numKeypoints-1) {
		return fmt.Errorf("forward displacements has %d channels, want %d",
			o.DisplacementsFwd.Channels, 2*(numKeypoints-1))
	}

	if numKeypoints > 1 && o.DisplacementsBwd.Channels != 2*(numKeypoints-1) {
		return fmt.Errorf("backward displacements has %d channels, want %d",
			o.DisplacementsBwd.Channels, 2*(numKeypoints-1))
	}

	for _, t := range []struct {
		name   string
		tensor Tensor
	}{
		{"offsets", o.Offsets},
		{"forward displacements", o.DisplacementsFwd},
		{"backward displacements", o.DisplacementsBwd},
	} {
		if len(t.tensor.Data) == 0 {
			// absent for a single part model with no skeleton edges
			continue
		}

		if t.tensor.Height != h || t.tensor.Width != w {
			return fmt.Errorf("%s grid is [%d,%d], want [%d,%d] to match heatmap",
				t.name, t.tensor.Height, t.tensor.Width, h, w)
		}
	}

	if len(o.LongOffsets.Data) > 0 && o.LongOffsets.Channels != 2*numKeypoints {
		return fmt.Errorf("long offsets has %d channels, want %d",
			o.LongOffsets.Channels, 2*numKeypoints)
	}

	return nil
}

// Sigmoid converts a raw logit to a probability-like score in 0..1.  Use it
// when the inference runtime hands over pre-activation heatmap or
// segmentation scores.
func Sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}

// SigmoidTensor applies Sigmoid in place over a whole buffer and returns it
func SigmoidTensor(t Tensor) Tensor {
	for i, v := range t.Data {
		t.Data[i] = Sigmoid(v)
	}
	return t
}

// MaskFromScores binarizes a single channel segmentation score buffer into a
// foreground Mask.  Scores are expected post-sigmoid, pixels at or above the
// threshold become foreground.
func MaskFromScores(scores Tensor, threshold float32) (Mask, error) {

	if scores.Channels != 1 {
		return Mask{}, fmt.Errorf("segmentation scores has %d channels, want 1",
			scores.Channels)
	}

	data := make([]uint8, scores.Height*scores.Width)

	for i, v := range scores.Data {
		if v >= threshold {
			data[i] = 1
		}
	}

	return Mask{
		Height: scores.Height,
		Width:  scores.Width,
		Data:   data,
	}, nil
}
