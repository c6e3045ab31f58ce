package render

import (
	"image"

	"github.com/swdee/go-bodypix/postprocess"
	"gocv.io/x/gocv"
)

// Poses renders the skeleton keypoints and limb lines for all decoded
// person instances.  Keypoints scoring below minKeypointScore are skipped
// along with any limb line touching them.
func Poses(img *gocv.Mat, poses []postprocess.Pose, minKeypointScore float32,
	lineThickness int) {

	edges := postprocess.CocoSkeleton().Edges()

	for _, pose := range poses {

		// draw skeleton lines
		for _, edge := range edges {
			a := pose.Keypoints[edge.Parent]
			b := pose.Keypoints[edge.Child]

			if a.Score < minKeypointScore || b.Score < minKeypointScore {
				continue
			}

			gocv.Line(img,
				image.Pt(int(a.Point.X), int(a.Point.Y)),
				image.Pt(int(b.Point.X), int(b.Point.Y)),
				limbColors[edge.ID], lineThickness)
		}

		// draw circles at skeleton joints
		for _, kp := range pose.Keypoints {
			if kp.Score < minKeypointScore {
				continue
			}

			gocv.Circle(img, image.Pt(int(kp.Point.X), int(kp.Point.Y)),
				3, keyPointColors[kp.Part], -1)
		}
	}
}
