package preprocess

import (
	"image"
	"image/color"

	bodypix "github.com/swdee/go-bodypix"
	"gocv.io/x/gocv"
)

// Resizer defines the struct used for scaling a source image to the model
// input dimensions.  The source is padded to the input aspect ratio first
// and then resized, which is the arrangement BodyPix models are trained
// with.  The padding record it produces is consumed during instance
// segmentation to map source pixels back onto the strided output grid.
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the model input width to scale to
	destWidth int
	// destHeight is the model input height to scale to
	destHeight int
	// tempMat is a Mat used during the resize process
	tempMat gocv.Mat
	// pad is the border added around the source image before resizing
	pad bodypix.Padding
	// resize scale factors from padded source to model input
	scaleX float32
	scaleY float32
}

// NewResizer returns a resizer used for scaling an image to the needed
// dimensions for input tensor size
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {
	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
	}

	// precalculate padding and scaling factors
	r.preCalc()

	return r
}

// Close frees memory allocated during the resize process
func (r *Resizer) Close() error {
	return r.tempMat.Close()
}

// preCalc works out the border needed to reach the model input aspect
// ratio and the resulting scale factors
func (r *Resizer) preCalc() {

	srcAspect := float32(r.srcWidth) / float32(r.srcHeight)
	destAspect := float32(r.destWidth) / float32(r.destHeight)

	if srcAspect < destAspect {
		// source is too narrow, pad the width
		padWidth := int(float32(r.srcHeight)*destAspect) - r.srcWidth
		r.pad.Left = padWidth / 2
		r.pad.Right = padWidth - r.pad.Left

	} else {
		// source is too wide, pad the height
		padHeight := int(float32(r.srcWidth)/destAspect) - r.srcHeight
		r.pad.Top = padHeight / 2
		r.pad.Bottom = padHeight - r.pad.Top
	}

	r.scaleX = float32(r.destWidth) / float32(r.srcWidth+r.pad.Left+r.pad.Right)
	r.scaleY = float32(r.destHeight) / float32(r.srcHeight+r.pad.Top+r.pad.Bottom)
}

// PadAndResize pads the source image to the model input aspect ratio and
// resizes the result to the input dimensions.  Color is used for the
// border pixels.
func (r *Resizer) PadAndResize(src gocv.Mat, dest *gocv.Mat, color color.RGBA) {

	gocv.CopyMakeBorder(src, &r.tempMat, r.pad.Top, r.pad.Bottom,
		r.pad.Left, r.pad.Right, gocv.BorderConstant, color)

	gocv.Resize(r.tempMat, dest, image.Pt(r.destWidth, r.destHeight),
		0, 0, gocv.InterpolationArea)
}

// Padding returns the border added around the source image before resizing
func (r *Resizer) Padding() bodypix.Padding {
	return r.pad
}

// ScaleX returns the horizontal scale factor from padded source to model
// input
func (r *Resizer) ScaleX() float32 {
	return r.scaleX
}

// ScaleY returns the vertical scale factor from padded source to model
// input
func (r *Resizer) ScaleY() float32 {
	return r.scaleY
}

// SrcWidth returns the width of the source image
func (r *Resizer) SrcWidth() int {
	return r.srcWidth
}

// SrcHeight returns the height of the source image
func (r *Resizer) SrcHeight() int {
	return r.srcHeight
}

// DestWidth returns the model input width
func (r *Resizer) DestWidth() int {
	return r.destWidth
}

// DestHeight returns the model input height
func (r *Resizer) DestHeight() int {
	return r.destHeight
}
