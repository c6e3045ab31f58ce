package postprocess

import (
	bodypix "github.com/swdee/go-bodypix"
)

// ScalePoses maps decoded poses from model input pixel space back into the
// source image space described by the resize scale factors and padding the
// preprocessor applied.  The returned poses are fresh copies, inputs are
// not modified.
func ScalePoses(poses []Pose, scaleY, scaleX float32, pad bodypix.Padding) []Pose {

	scaled := make([]Pose, len(poses))

	for i, pose := range poses {
		keypoints := make([]Keypoint, len(pose.Keypoints))

		for j, kp := range pose.Keypoints {
			keypoints[j] = Keypoint{
				Part:  kp.Part,
				Score: kp.Score,
				Point: Point{
					Y: kp.Point.Y/scaleY - float32(pad.Top),
					X: kp.Point.X/scaleX - float32(pad.Left),
				},
			}
		}

		scaled[i] = Pose{
			Keypoints: keypoints,
			Score:     pose.Score,
		}
	}

	return scaled
}

// FlipPosesHorizontal mirrors pose keypoints around the vertical centre of
// an image of the given width, for frames captured from a mirrored camera
func FlipPosesHorizontal(poses []Pose, width int) []Pose {

	flipped := make([]Pose, len(poses))

	for i, pose := range poses {
		keypoints := make([]Keypoint, len(pose.Keypoints))

		for j, kp := range pose.Keypoints {
			keypoints[j] = Keypoint{
				Part:  kp.Part,
				Score: kp.Score,
				Point: Point{
					Y: kp.Point.Y,
					X: float32(width) - 1 - kp.Point.X,
				},
			}
		}

		flipped[i] = Pose{
			Keypoints: keypoints,
			Score:     pose.Score,
		}
	}

	return flipped
}
