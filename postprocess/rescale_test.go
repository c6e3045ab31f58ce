package postprocess

import (
	"testing"

	bodypix "github.com/swdee/go-bodypix"
)

func TestScalePoses(t *testing.T) {
	poses := []Pose{
		{
			Keypoints: []Keypoint{
				{Part: 0, Point: Point{Y: 100, X: 200}, Score: 0.9},
			},
			Score: 0.9,
		},
	}

	// a 1280x720 source letterboxed into 513x513 with vertical padding
	pad := bodypix.Padding{Top: 280, Bottom: 280}
	scale := float32(513.0 / 1280.0)

	scaled := ScalePoses(poses, scale, scale, pad)

	kp := scaled[0].Keypoints[0]

	wantY := 100/scale - 280
	wantX := 200 / scale

	if !roughlyEqual(kp.Point.Y, wantY) || !roughlyEqual(kp.Point.X, wantX) {
		t.Errorf("expected keypoint at (%v,%v), got (%v,%v)",
			wantY, wantX, kp.Point.Y, kp.Point.X)
	}

	if kp.Score != 0.9 || scaled[0].Score != 0.9 {
		t.Error("expected scores preserved")
	}

	// input poses must not be modified
	if poses[0].Keypoints[0].Point.Y != 100 {
		t.Error("expected input pose unmodified")
	}
}

func TestFlipPosesHorizontal(t *testing.T) {
	poses := []Pose{
		{
			Keypoints: []Keypoint{
				{Part: 0, Point: Point{Y: 10, X: 30}, Score: 0.9},
			},
			Score: 0.9,
		},
	}

	flipped := FlipPosesHorizontal(poses, 100)

	kp := flipped[0].Keypoints[0]

	if kp.Point.Y != 10 || kp.Point.X != 69 {
		t.Errorf("expected keypoint at (10,69), got (%v,%v)",
			kp.Point.Y, kp.Point.X)
	}

	if poses[0].Keypoints[0].Point.X != 30 {
		t.Error("expected input pose unmodified")
	}
}

// roughlyEqual compares floats within a small epsilon
func roughlyEqual(a, b float32) bool {
	diff := a - b
	return diff < 1e-3 && diff > -1e-3
}
