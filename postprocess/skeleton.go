package postprocess

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// PartNames are the COCO body parts a BodyPix model localises, indexed by
// part id
var PartNames = []string{
	"nose", "leftEye", "rightEye", "leftEar", "rightEar",
	"leftShoulder", "rightShoulder", "leftElbow", "rightElbow",
	"leftWrist", "rightWrist", "leftHip", "rightHip",
	"leftKnee", "rightKnee", "leftAnkle", "rightAnkle",
}

// cocoPoseChain lists the parent/child part pairs of the COCO skeleton in
// canonical order, anchored at the nose.  The list position of each pair is
// the edge id used to select the matching displacement buffer channels.
var cocoPoseChain = [][2]string{
	{"nose", "leftEye"}, {"leftEye", "leftEar"},
	{"nose", "rightEye"}, {"rightEye", "rightEar"},
	{"nose", "leftShoulder"}, {"leftShoulder", "leftElbow"},
	{"leftElbow", "leftWrist"}, {"leftShoulder", "leftHip"},
	{"leftHip", "leftKnee"}, {"leftKnee", "leftAnkle"},
	{"nose", "rightShoulder"}, {"rightShoulder", "rightElbow"},
	{"rightElbow", "rightWrist"}, {"rightShoulder", "rightHip"},
	{"rightHip", "rightKnee"}, {"rightKnee", "rightAnkle"},
}

// Edge joins a parent part to a child part in the skeleton tree.  ID is the
// edge's position in the canonical chain and selects the displacement
// channel pair, delta Y in channel ID and delta X in channel numEdges+ID.
type Edge struct {
	Parent int
	Child  int
	ID     int
}

// Skeleton is the fixed tree of parts the pose decoder walks.  It is built
// once and never mutated, so a single instance can be shared freely.
type Skeleton struct {
	parts []string
	edges []Edge
}

// NewSkeleton builds a skeleton from the part names and the canonical
// parent/child chain.  The chain must form a single connected tree over the
// parts, otherwise the two sweep traversal used by the pose decoder cannot
// resolve every part from an arbitrary root and an error is returned.
func NewSkeleton(parts []string, chain [][2]string) (*Skeleton, error) {

	if len(parts) == 0 {
		return nil, fmt.Errorf("skeleton has no parts")
	}

	if len(chain) != len(parts)-1 {
		return nil, fmt.Errorf("skeleton chain has %d edges, want %d for %d parts",
			len(chain), len(parts)-1, len(parts))
	}

	ids := make(map[string]int, len(parts))

	for i, name := range parts {
		ids[name] = i
	}

	g := simple.NewUndirectedGraph()

	for i := range parts {
		g.AddNode(simple.Node(i))
	}

	edges := make([]Edge, len(chain))

	for i, pair := range chain {

		parent, ok := ids[pair[0]]

		if !ok {
			return nil, fmt.Errorf("skeleton edge %d references unknown part %q", i, pair[0])
		}

		child, ok := ids[pair[1]]

		if !ok {
			return nil, fmt.Errorf("skeleton edge %d references unknown part %q", i, pair[1])
		}

		if parent == child {
			return nil, fmt.Errorf("skeleton edge %d joins part %q to itself", i, pair[0])
		}

		edges[i] = Edge{Parent: parent, Child: child, ID: i}
		g.SetEdge(simple.Edge{F: simple.Node(parent), T: simple.Node(child)})
	}

	// with exactly numParts-1 edges a single connected component implies
	// the chain is an acyclic tree covering every part
	if cc := topo.ConnectedComponents(g); len(cc) != 1 {
		return nil, fmt.Errorf("skeleton graph has %d connected components, want 1", len(cc))
	}

	return &Skeleton{
		parts: parts,
		edges: edges,
	}, nil
}

var cocoSkeleton *Skeleton

func init() {
	var err error

	cocoSkeleton, err = NewSkeleton(PartNames, cocoPoseChain)

	if err != nil {
		panic(fmt.Sprintf("building COCO skeleton: %v", err))
	}
}

// CocoSkeleton returns the shared 17 part COCO skeleton used by the
// published BodyPix checkpoints
func CocoSkeleton() *Skeleton {
	return cocoSkeleton
}

// NumParts returns the number of keypoint parts in the skeleton
func (s *Skeleton) NumParts() int {
	return len(s.parts)
}

// NumEdges returns the number of parent/child edges in the skeleton
func (s *Skeleton) NumEdges() int {
	return len(s.edges)
}

// Edges returns the skeleton edges in canonical chain order.  Callers must
// not modify the returned slice.
func (s *Skeleton) Edges() []Edge {
	return s.edges
}

// PartName returns the name of the given part id
func (s *Skeleton) PartName(part int) string {
	return s.parts[part]
}
