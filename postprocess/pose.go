package postprocess

import (
	bodypix "github.com/swdee/go-bodypix"
)

// offsetRefineSteps is the number of short range offset refinement
// iterations applied when hopping from a resolved part to its neighbour
const offsetRefineSteps = 2

// decodePose resolves every skeleton part for a single root candidate by
// walking the tree through the displacement fields.  The backward sweep
// iterates the edge list last to first resolving parents from already
// resolved children, which propagates from the root toward the anchor part.
// The forward sweep then resolves the remaining children first to last.
// Together the two sweeps reach all parts whichever part seeded the pose,
// without recursion or a work queue.
func decodePose(root PartCandidate, skel *Skeleton, out *bodypix.Outputs,
	stride int) []Keypoint {

	keypoints := make([]Keypoint, skel.NumParts())
	resolved := make([]bool, skel.NumParts())

	keypoints[root.Part] = Keypoint{
		Part:  root.Part,
		Point: imageCoords(root, out.Offsets, stride),
		Score: root.Score,
	}
	resolved[root.Part] = true

	edges := skel.Edges()

	// backward sweep, child to parent via the backward displacements
	for e := len(edges) - 1; e >= 0; e-- {
		edge := edges[e]

		if resolved[edge.Child] && !resolved[edge.Parent] {
			keypoints[edge.Parent] = traverseToTargetKeypoint(edge.ID,
				keypoints[edge.Child], edge.Parent, out.Heatmap, out.Offsets,
				out.DisplacementsBwd, stride)
			resolved[edge.Parent] = true
		}
	}

	// forward sweep, parent to child via the forward displacements
	for _, edge := range edges {

		if resolved[edge.Parent] && !resolved[edge.Child] {
			keypoints[edge.Child] = traverseToTargetKeypoint(edge.ID,
				keypoints[edge.Parent], edge.Child, out.Heatmap, out.Offsets,
				out.DisplacementsFwd, stride)
			resolved[edge.Child] = true
		}
	}

	return keypoints
}

// imageCoords converts a candidate's heatmap cell into a model input pixel
// position by applying the short range offset sampled at that cell
func imageCoords(cand PartCandidate, offsets bodypix.Tensor, stride int) Point {

	// delta X channels are the upper half of the offset buffer
	half := offsets.Channels / 2

	return Point{
		Y: float32(cand.CellY*stride) + offsets.At(cand.CellY, cand.CellX, cand.Part),
		X: float32(cand.CellX*stride) + offsets.At(cand.CellY, cand.CellX, half+cand.Part),
	}
}

// traverseToTargetKeypoint resolves an unknown part from an adjacent
// resolved one.  The displacement vector sampled at the source cell gives
// an initial estimate of the target position which is then snapped onto the
// strided grid and corrected by the target part's short range offsets.
func traverseToTargetKeypoint(edgeID int, source Keypoint, targetPart int,
	heatmap, offsets, displacements bodypix.Tensor, stride int) Keypoint {

	height := heatmap.Height
	width := heatmap.Width
	halfOffs := offsets.Channels / 2
	halfDisp := displacements.Channels / 2

	srcY := clampInt(roundInt(source.Point.Y/float32(stride)), 0, height-1)
	srcX := clampInt(roundInt(source.Point.X/float32(stride)), 0, width-1)

	targetY := source.Point.Y + displacements.At(srcY, srcX, edgeID)
	targetX := source.Point.X + displacements.At(srcY, srcX, halfDisp+edgeID)

	var cellY, cellX int

	for i := 0; i < offsetRefineSteps; i++ {
		cellY = clampInt(roundInt(targetY/float32(stride)), 0, height-1)
		cellX = clampInt(roundInt(targetX/float32(stride)), 0, width-1)

		targetY = float32(cellY*stride) + offsets.At(cellY, cellX, targetPart)
		targetX = float32(cellX*stride) + offsets.At(cellY, cellX, halfOffs+targetPart)
	}

	cellY = clampInt(roundInt(targetY/float32(stride)), 0, height-1)
	cellX = clampInt(roundInt(targetX/float32(stride)), 0, width-1)

	return Keypoint{
		Part:  targetPart,
		Point: Point{Y: targetY, X: targetX},
		Score: heatmap.At(cellY, cellX, targetPart),
	}
}
