package postprocess

import (
	"fmt"
	"math"

	bodypix "github.com/swdee/go-bodypix"
)

// InstanceSegmenter carves the shared foreground segmentation mask into per
// person instance masks.  Every foreground pixel estimates, through the
// long range offset field, where the keypoints of the person owning it
// would be and is assigned to the pose whose keypoints lie nearest to that
// estimate.
type InstanceSegmenter struct {
	// Params are the segmenter configuration parameters
	Params InstanceParams
	// idGen is a counter that increments and provides the next number for
	// each instance result ID
	idGen *idGenerator
}

// InstanceParams defines the struct containing the instance segmentation
// parameters to use for post processing operations
type InstanceParams struct {
	// Stride is the model output stride
	Stride int
	// InputHeight and InputWidth are the model input resolution the padded
	// source frame was resized to for inference
	InputHeight int
	InputWidth  int
	// MinPoseScore filters out low confidence poses before assignment
	MinPoseScore float32
	// MinKeypointScore is the minimum keypoint confidence for a keypoint
	// to take part in the embedding distance
	MinKeypointScore float32
	// RefineSteps is the number of embedding refinement iterations applied
	// per pixel
	RefineSteps int
	// MatchKeypoints is how many of the leading skeleton keypoint channels
	// are compared when matching pixels to poses.  The first five cover
	// the face parts which localise most reliably.
	MatchKeypoints int
}

// InstanceCOCOParams returns an instance of InstanceParams configured with
// default values for the published BodyPix checkpoints featuring:
// - Output Stride: 16
// - Input Resolution: 513x513
// - Minimum Pose Score: 0.2
// - Minimum Keypoint Score: 0.3
// - Refine Steps: 10
// - Matching Keypoints: 5
func InstanceCOCOParams() InstanceParams {
	return InstanceParams{
		Stride:           16,
		InputHeight:      513,
		InputWidth:       513,
		MinPoseScore:     0.2,
		MinKeypointScore: 0.3,
		RefineSteps:      10,
		MatchKeypoints:   5,
	}
}

// NewInstanceSegmenter returns an instance of the instance segmentation
// post processor
func NewInstanceSegmenter(p InstanceParams) *InstanceSegmenter {
	return &InstanceSegmenter{
		Params: p,
		idGen:  newIDGenerator(),
	}
}

// PersonMasks assigns every foreground pixel of the segmentation mask to
// its nearest qualifying pose and returns one binary mask per retained
// pose.  Poses must be in the same pixel space as the segmentation mask,
// rescale them with ScalePoses first when the mask is at source image
// resolution.  pad is the padding applied around the source image before
// inference.  Pixels with no qualifying pose appear in no mask.
func (s *InstanceSegmenter) PersonMasks(out *bodypix.Outputs, poses []Pose,
	pad bodypix.Padding) ([]InstanceMask, error) {

	retained, nearest, err := s.assignPixels(out, poses, pad)

	if err != nil {
		return nil, err
	}

	mask := out.Segmentation
	masks := make([]InstanceMask, len(retained))

	for i, pose := range retained {
		masks[i] = InstanceMask{
			Pose: pose,
			Mask: make([]uint8, mask.Height*mask.Width),
			ID:   s.idGen.GetNext(),
		}
	}

	for n, k := range nearest {
		if k >= 0 {
			masks[k].Mask[n] = 1
		}
	}

	return masks, nil
}

// PartMasks is the body part level variant of PersonMasks.  partSeg is the
// per pixel body part id map decoded from the model's part segmentation
// head, at the same resolution as the segmentation mask.  Assigned pixels
// copy their part id into the owning instance's mask, every other pixel is
// -1.
func (s *InstanceSegmenter) PartMasks(out *bodypix.Outputs, poses []Pose,
	partSeg []int32, pad bodypix.Padding) ([]InstancePartMask, error) {

	mask := out.Segmentation

	if len(partSeg) != mask.Height*mask.Width {
		return nil, fmt.Errorf("part segmentation length %d does not match mask dimensions [%d,%d], want %d",
			len(partSeg), mask.Height, mask.Width, mask.Height*mask.Width)
	}

	retained, nearest, err := s.assignPixels(out, poses, pad)

	if err != nil {
		return nil, err
	}

	masks := make([]InstancePartMask, len(retained))

	for i, pose := range retained {
		parts := make([]int32, mask.Height*mask.Width)

		for n := range parts {
			parts[n] = -1
		}

		masks[i] = InstancePartMask{
			Pose:  pose,
			Parts: parts,
			ID:    s.idGen.GetNext(),
		}
	}

	for n, k := range nearest {
		if k >= 0 {
			masks[k].Parts[n] = partSeg[n]
		}
	}

	return masks, nil
}

// assignPixels computes the nearest retained pose index for every
// foreground pixel, or -1 where no pose qualifies
func (s *InstanceSegmenter) assignPixels(out *bodypix.Outputs, poses []Pose,
	pad bodypix.Padding) ([]Pose, []int32, error) {

	mask := out.Segmentation
	long := out.LongOffsets

	if len(mask.Data) != mask.Height*mask.Width {
		return nil, nil, fmt.Errorf("segmentation mask length %d does not match dimensions [%d,%d]",
			len(mask.Data), mask.Height, mask.Width)
	}

	if s.Params.MatchKeypoints > long.Channels/2 {
		return nil, nil, fmt.Errorf("long offsets has %d keypoint channels, want at least %d for matching",
			long.Channels/2, s.Params.MatchKeypoints)
	}

	wantH := roundInt((float32(s.Params.InputHeight)-1)/float32(s.Params.Stride) + 1)
	wantW := roundInt((float32(s.Params.InputWidth)-1)/float32(s.Params.Stride) + 1)

	if long.Height != wantH || long.Width != wantW {
		return nil, nil, fmt.Errorf("long offsets grid is [%d,%d], want [%d,%d] for input %dx%d at stride %d",
			long.Height, long.Width, wantH, wantW,
			s.Params.InputWidth, s.Params.InputHeight, s.Params.Stride)
	}

	retained := make([]Pose, 0, len(poses))

	for _, pose := range poses {
		if pose.Score >= s.Params.MinPoseScore {
			retained = append(retained, pose)
		}
	}

	nearest := make([]int32, mask.Height*mask.Width)

	for i := range nearest {
		nearest[i] = -1
	}

	if len(retained) == 0 {
		return retained, nearest, nil
	}

	mapper := outputMapper{
		padTop:    pad.Top,
		padLeft:   pad.Left,
		scaleY:    float32(s.Params.InputHeight) / float32(mask.Height+pad.Top+pad.Bottom),
		scaleX:    float32(s.Params.InputWidth) / float32(mask.Width+pad.Left+pad.Right),
		stride:    s.Params.Stride,
		outHeight: long.Height,
		outWidth:  long.Width,
	}

	// this loop dominates total cost at O(pixels * poses * keypoints), so
	// large masks are spread across worker goroutines
	if mask.Height*mask.Width >= parallelMinPixels {
		s.assignRowsParallel(mapper, out, retained, nearest)
	} else {
		s.assignRows(mapper, out, retained, nearest, 0, 1)
	}

	return retained, nearest, nil
}

// outputMapper converts mask pixel coordinates into cells of the strided
// output grid, accounting for the pre-resize padding and the resize scale
type outputMapper struct {
	padTop, padLeft     int
	scaleY, scaleX      float32
	stride              int
	outHeight, outWidth int
}

// cell maps a mask pixel position onto the strided output grid
func (m outputMapper) cell(y, x float32) (int, int) {

	cy := roundInt(((float32(m.padTop)+y+1)*m.scaleY - 1) / float32(m.stride))
	cx := roundInt(((float32(m.padLeft)+x+1)*m.scaleX - 1) / float32(m.stride))

	return clampInt(cy, 0, m.outHeight-1), clampInt(cx, 0, m.outWidth-1)
}

// assignRows computes nearest pose assignments for rows startRow,
// startRow+step, startRow+2*step and so on.  Each pixel only writes its own
// index of nearest, so concurrent calls on disjoint rows are safe.
func (s *InstanceSegmenter) assignRows(m outputMapper, out *bodypix.Outputs,
	poses []Pose, nearest []int32, startRow, step int) {

	mask := out.Segmentation
	embedding := make([]Point, s.Params.MatchKeypoints)

	for y := startRow; y < mask.Height; y += step {
		for x := 0; x < mask.Width; x++ {

			n := y*mask.Width + x

			if mask.Data[n] != 1 {
				continue
			}

			s.embedPixel(m, out.LongOffsets, mask, y, x, embedding)

			best := int32(-1)
			bestDist := float32(math.Inf(1))

			for k, pose := range poses {
				if d := s.poseDistance(embedding, pose); d < bestDist {
					bestDist = d
					best = int32(k)
				}
			}

			nearest[n] = best
		}
	}
}

// embedPixel estimates where each matching keypoint of the person owning
// pixel (y,x) would be.  The long range offset sampled at the pixel's cell
// gives the initial estimate, each refinement step then accumulates a fresh
// field lookup at the running position onto it.
func (s *InstanceSegmenter) embedPixel(m outputMapper, long bodypix.Tensor,
	mask bodypix.Mask, y, x int, embedding []Point) {

	half := long.Channels / 2

	for p := 0; p < s.Params.MatchKeypoints; p++ {

		cy, cx := m.cell(float32(y), float32(x))

		ey := float32(y) + long.At(cy, cx, p)
		ex := float32(x) + long.At(cy, cx, half+p)

		for step := 0; step < s.Params.RefineSteps; step++ {
			ey = clampFloat(ey, 0, float32(mask.Height-1))
			ex = clampFloat(ex, 0, float32(mask.Width-1))

			cy, cx = m.cell(ey, ex)
			ey += long.At(cy, cx, p)
			ex += long.At(cy, cx, half+p)
		}

		embedding[p] = Point{Y: ey, X: ex}
	}
}

// poseDistance is the mean squared distance between the pixel's embedding
// estimates and the pose keypoints scoring above the minimum.  A pose with
// no qualifying keypoints returns +Inf so it is never preferred over a pose
// with at least one.
func (s *InstanceSegmenter) poseDistance(embedding []Point, pose Pose) float32 {

	var sum float32
	count := 0

	for p, e := range embedding {
		kp := pose.Keypoints[p]

		if kp.Score > s.Params.MinKeypointScore {
			sum += squaredDistance(e.Y, e.X, kp.Point.Y, kp.Point.X)
			count++
		}
	}

	if count == 0 {
		return float32(math.Inf(1))
	}

	return sum / float32(count)
}
