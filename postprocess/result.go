package postprocess

// Point is a sub-pixel position.  Decoded poses are in model input pixel
// space until rescaled back to the source image with ScalePoses.
type Point struct {
	X float32
	Y float32
}

// Keypoint is one located skeleton part of a person instance
type Keypoint struct {
	// Part is the part id, an index into the skeleton part names
	Part int
	// Point is the keypoint position
	Point Point
	// Score is the heatmap confidence at the keypoint's cell
	Score float32
}

// Pose is a fully resolved person instance.  Keypoints is indexed by part
// id and always has one entry per skeleton part.
type Pose struct {
	Keypoints []Keypoint
	// Score is the instance score, the mean keypoint score with keypoints
	// overlapping earlier instances contributing zero
	Score float32
}

// InstanceMask is the person level segmentation carved out of the shared
// foreground mask for one pose
type InstanceMask struct {
	// Pose the mask pixels were assigned to
	Pose Pose
	// Mask has 1 at every pixel assigned to this instance.  Dimensions
	// match the segmentation mask the assigner consumed.
	Mask []uint8
	// ID is a unique ID assigned to the instance result
	ID int64
}

// InstancePartMask is the body part level segmentation for one pose
type InstancePartMask struct {
	// Pose the mask pixels were assigned to
	Pose Pose
	// Parts carries the body part id at every pixel assigned to this
	// instance and -1 everywhere else
	Parts []int32
	// ID is a unique ID assigned to the instance result
	ID int64
}
