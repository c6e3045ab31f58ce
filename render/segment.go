package render

import (
	"fmt"
	"image"
	"image/color"

	clipper "github.com/ctessum/go.clipper"
	"github.com/swdee/go-bodypix/postprocess"
	"gocv.io/x/gocv"
)

// InstanceMasks renders the person instance masks as a transparent overlay
// on top of the whole image, one color per instance
func InstanceMasks(img *gocv.Mat, masks []postprocess.InstanceMask, alpha float32) {

	// get dimensions
	width := img.Cols()
	height := img.Rows()

	// it is too slow to manipulate pixel by pixel using GoCV due to slowness
	// over CGO.  So we copy the bytes from the source image and manipulate
	// the bytes directly before copying back to a Mat
	imgData := img.ToBytes()

	for i, mask := range masks {

		clr := instanceColors[i%len(instanceColors)]

		blendMask(imgData, mask.Mask, width, height, alpha, func(int) color.RGBA {
			return clr
		})
	}

	// copy back to the original mat
	tmpImg, _ := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, imgData)
	defer tmpImg.Close()
	tmpImg.CopyTo(img)
}

// PartMasks renders the body part level instance masks as a transparent
// overlay, one color per body part region
func PartMasks(img *gocv.Mat, masks []postprocess.InstancePartMask, alpha float32) {

	width := img.Cols()
	height := img.Rows()

	imgData := img.ToBytes()

	for _, mask := range masks {
		for j := 0; j < height; j++ {
			for k := 0; k < width; k++ {

				idx := j*width + k

				if idx >= len(mask.Parts) || mask.Parts[idx] < 0 {
					continue
				}

				clr := partColors[int(mask.Parts[idx])%len(partColors)]
				blendPixel(imgData, j*width*3+k*3, clr, alpha)
			}
		}
	}

	tmpImg, _ := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, imgData)
	defer tmpImg.Close()
	tmpImg.CopyTo(img)
}

// blendMask alpha blends all set pixels of a binary mask into the raw BGR
// image bytes
func blendMask(imgData []byte, mask []uint8, width, height int, alpha float32,
	colorAt func(idx int) color.RGBA) {

	for j := 0; j < height; j++ {
		for k := 0; k < width; k++ {

			idx := j*width + k

			if idx >= len(mask) || mask[idx] == 0 {
				continue
			}

			blendPixel(imgData, j*width*3+k*3, colorAt(idx), alpha)
		}
	}
}

// blendPixel blends a single BGR pixel with the color at the given alpha
// transparency
func blendPixel(imgData []byte, pixelPos int, clr color.RGBA, alpha float32) {

	// get original pixel colors directly from the byte slice
	b, g, r := imgData[pixelPos+0], imgData[pixelPos+1], imgData[pixelPos+2]

	imgData[pixelPos+0] = uint8(float32(b)*(1-alpha) + float32(clr.B)*alpha)
	imgData[pixelPos+1] = uint8(float32(g)*(1-alpha) + float32(clr.G)*alpha)
	imgData[pixelPos+2] = uint8(float32(r)*(1-alpha) + float32(clr.R)*alpha)
}

// outlineLabel defines where an instance score label gets rendered on the
// source image
type outlineLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// findTopPoint finds the highest point (Y axis) of the given point vector
func findTopPoint(approx gocv.PointVector) image.Point {
	topPoint := approx.At(0)
	for i := 1; i < approx.Size(); i++ {
		pt := approx.At(i)
		if pt.Y < topPoint.Y {
			topPoint = pt
		}
	}
	return topPoint
}

// InstanceOutlines renders an expanded polygon outline around each person
// instance mask with the pose score as a label.  expand is the number of
// pixels to offset the outline outward from the mask contour, minArea
// filters out small contours picked up from aliasing in the binary mask.
func InstanceOutlines(img *gocv.Mat, masks []postprocess.InstanceMask,
	expand float64, minArea float64, font Font, lineThickness int) error {

	width := img.Cols()
	height := img.Rows()

	labels := make([]outlineLabel, 0)

	for i, mask := range masks {

		// create a Mat from the instance mask
		maskMat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8U, mask.Mask)

		if err != nil {
			return fmt.Errorf("error creating mask Mat: %w", err)
		}

		// find contours for this instance
		contours := gocv.FindContours(maskMat, gocv.RetrievalExternal, gocv.ChainApproxSimple)

		useClr := instanceColors[i%len(instanceColors)]

		for c := 0; c < contours.Size(); c++ {
			contour := contours.At(c)

			area := gocv.ContourArea(contour)

			if area < minArea {
				continue
			}

			approx := gocv.ApproxPolyDP(contour, 3, true)

			expanded := expandPolygon(approx, expand)
			approx.Close()

			if expanded.Size() == 0 {
				expanded.Close()
				continue
			}

			ptsVec := gocv.NewPointsVector()
			ptsVec.Append(expanded)

			gocv.Polylines(img, ptsVec, true, useClr, lineThickness)

			// place the score label above the topmost outline point
			topPoint := findTopPoint(expanded)
			text := fmt.Sprintf("person %.2f", mask.Pose.Score)
			textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

			labelPos := image.Pt(topPoint.X-textSize.X/2, topPoint.Y-font.BottomPad)
			bRect := image.Rect(topPoint.X-textSize.X/2-font.LeftPad,
				topPoint.Y-textSize.Y-font.TopPad-font.BottomPad,
				topPoint.X+textSize.X/2+font.RightPad, topPoint.Y)

			labels = append(labels, outlineLabel{
				rect:    bRect,
				clr:     useClr,
				text:    text,
				textPos: labelPos,
			})

			expanded.Close()
			ptsVec.Close()
		}

		contours.Close()
		maskMat.Close()
	}

	// draw all labels last so they sit on the top most layer of the image
	// and don't get overlapped by outline lines
	for _, label := range labels {
		gocv.Rectangle(img, label.rect, label.clr, -1)

		gocv.PutTextWithParams(img, label.text, label.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}

	return nil
}

// expandPolygon offsets a closed contour polygon outward by the given
// number of pixels
func expandPolygon(approx gocv.PointVector, expand float64) gocv.PointVector {

	// convert the contour points to a Clipper Path
	var path clipper.Path

	for i := 0; i < approx.Size(); i++ {
		pt := approx.At(i)
		path = append(path, &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)})
	}

	// create a ClipperOffset object and add the path
	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	// execute the offset operation
	solution := co.Execute(expand)

	// convert the solution back to points
	var points []image.Point

	for _, sol := range solution {
		for _, pt := range sol {
			points = append(points, image.Point{X: int(pt.X), Y: int(pt.Y)})
		}
	}

	return gocv.NewPointVectorFromPoints(points)
}
