package preprocess

import (
	"image/color"
	"testing"

	bodypix "github.com/swdee/go-bodypix"
	"gocv.io/x/gocv"
)

var (
	black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

func TestPadAndResize(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		destWidth     int
		destHeight    int
		expectedPad   bodypix.Padding
		expectedScale float32
	}{
		// wide source pads the height
		{1280, 720, 513, 513, bodypix.Padding{Top: 280, Bottom: 280}, 513.0 / 1280.0},
		// tall source pads the width
		{800, 1000, 513, 513, bodypix.Padding{Left: 100, Right: 100}, 513.0 / 1000.0},
		// square source needs no padding
		{800, 800, 513, 513, bodypix.Padding{}, 513.0 / 800.0},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC3)

		resizedImg := gocv.NewMat()

		resizer := NewResizer(tc.srcWidth, tc.srcHeight, tc.destWidth, tc.destHeight)

		resizer.PadAndResize(img, &resizedImg, black)

		if resizer.Padding() != tc.expectedPad {
			t.Errorf("Test failed for src (%d, %d): Padding values wrong, expected %+v, got %+v",
				tc.srcWidth, tc.srcHeight, tc.expectedPad, resizer.Padding())
		}

		if resizer.ScaleX() != tc.expectedScale || resizer.ScaleY() != tc.expectedScale {
			t.Errorf("Test failed for src (%d, %d): Scale factor incorrect, expected %f, got x=%f y=%f",
				tc.srcWidth, tc.srcHeight, tc.expectedScale, resizer.ScaleX(), resizer.ScaleY())
		}

		if resizedImg.Cols() != tc.destWidth || resizedImg.Rows() != tc.destHeight {
			t.Errorf("Test failed for src (%d, %d): resized to (%d, %d), want (%d, %d)",
				tc.srcWidth, tc.srcHeight, resizedImg.Cols(), resizedImg.Rows(),
				tc.destWidth, tc.destHeight)
		}

		img.Close()
		resizedImg.Close()
		resizer.Close()
	}
}
