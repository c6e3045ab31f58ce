package postprocess

import (
	"fmt"

	bodypix "github.com/swdee/go-bodypix"
)

// PoseDecoder decodes the poses of multiple person instances from BodyPix
// model outputs
type PoseDecoder struct {
	// Params are the decoder configuration parameters
	Params PoseParams
	// skel is the fixed skeleton tree walked during decoding
	skel *Skeleton
}

// PoseParams defines the struct containing the pose decoding parameters to
// use for post processing operations
type PoseParams struct {
	// Stride is the model output stride, the downsampling factor between
	// the strided output grid and the model input pixel grid
	Stride int
	// MaxPoses is the maximum number of person instances returned
	MaxPoses int
	// ScoreThreshold is the minimum heatmap score required for a cell to
	// be considered a root candidate
	ScoreThreshold float32
	// NMSRadius is the minimum pixel separation enforced between the same
	// part keypoints of distinct person instances
	NMSRadius float32
}

// PoseCOCOParams returns an instance of PoseParams configured with default
// values for the published BodyPix checkpoints trained on the COCO
// keypoints featuring:
// - Output Stride: 16
// - Maximum Poses: 10
// - Score Threshold: 0.3
// - NMS Radius: 20
func PoseCOCOParams() PoseParams {
	return PoseParams{
		Stride:         16,
		MaxPoses:       10,
		ScoreThreshold: 0.3,
		NMSRadius:      20,
	}
}

// NewPoseDecoder returns an instance of the pose decoder using the COCO
// skeleton
func NewPoseDecoder(p PoseParams) *PoseDecoder {
	return NewPoseDecoderWithSkeleton(p, CocoSkeleton())
}

// NewPoseDecoderWithSkeleton returns an instance of the pose decoder
// walking the given skeleton tree
func NewPoseDecoderWithSkeleton(p PoseParams, skel *Skeleton) *PoseDecoder {
	return &PoseDecoder{
		Params: p,
		skel:   skel,
	}
}

// DecodePoses runs the greedy part based decoding loop.  Root candidates
// are dequeued in descending score order, gated by part based NMS against
// the already accepted instances, and expanded into full poses by walking
// the skeleton.  Poses are returned in acceptance order which is also
// non-increasing root score order.  An exhausted candidate queue yields an
// empty list, not an error.
func (d *PoseDecoder) DecodePoses(out *bodypix.Outputs) ([]Pose, error) {

	if err := out.Validate(d.skel.NumParts()); err != nil {
		return nil, fmt.Errorf("invalid model outputs: %w", err)
	}

	queue := buildPartCandidateQueue(out.Heatmap, d.Params.ScoreThreshold)

	squaredRadius := d.Params.NMSRadius * d.Params.NMSRadius
	poses := make([]Pose, 0)

	for len(poses) < d.Params.MaxPoses && !queue.empty() {

		root := queue.dequeue()
		rootPoint := imageCoords(root, out.Offsets, d.Params.Stride)

		// an accepted instance claims the region around each of its
		// keypoints, later candidates inside it are duplicates
		if withinNMSRadiusOfSamePart(poses, squaredRadius, rootPoint, root.Part) {
			continue
		}

		keypoints := decodePose(root, d.skel, out, d.Params.Stride)

		poses = append(poses, Pose{
			Keypoints: keypoints,
			Score:     instanceScore(poses, squaredRadius, keypoints),
		})
	}

	return poses, nil
}

// withinNMSRadiusOfSamePart reports whether point lies within the NMS
// radius of the same part keypoint of any already accepted pose
func withinNMSRadiusOfSamePart(poses []Pose, squaredRadius float32,
	point Point, part int) bool {

	for _, pose := range poses {
		kp := pose.Keypoints[part].Point

		if squaredDistance(point.Y, point.X, kp.Y, kp.X) <= squaredRadius {
			return true
		}
	}

	return false
}

// instanceScore is the mean keypoint score of a decoded pose, with
// keypoints overlapping the same part of an earlier instance contributing
// zero.  Poses that substantially overlap an earlier one rank low even
// when their root keypoint passed the NMS gate.
func instanceScore(poses []Pose, squaredRadius float32, keypoints []Keypoint) float32 {

	var sum float32

	for _, kp := range keypoints {
		if !withinNMSRadiusOfSamePart(poses, squaredRadius, kp.Point, kp.Part) {
			sum += kp.Score
		}
	}

	return sum / float32(len(keypoints))
}
