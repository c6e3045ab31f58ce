package postprocess

import (
	"runtime"
	"sync"

	bodypix "github.com/swdee/go-bodypix"
)

// parallelMinPixels is the segmentation size above which pixel assignment
// is spread across worker goroutines.  Below it the goroutine overhead
// outweighs the gain.
const parallelMinPixels = 1 << 15

// assignRowsParallel splits the mask rows across NumCPU workers.  Pixels
// are independent and every worker writes disjoint rows of nearest, so the
// assignments are identical to the serial path.
func (s *InstanceSegmenter) assignRowsParallel(m outputMapper,
	out *bodypix.Outputs, poses []Pose, nearest []int32) {

	numWorkers := runtime.NumCPU()

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	// each worker handles rows y = w, w+numWorkers, w+2*numWorkers
	for w := 0; w < numWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			s.assignRows(m, out, poses, nearest, w, numWorkers)
		}(w)
	}

	wg.Wait()
}
