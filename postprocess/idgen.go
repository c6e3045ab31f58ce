package postprocess

import "sync"

// idGenerator holds a counter for generating the next incremental ID number
// assigned to instance results
type idGenerator struct {
	id int64
	sync.Mutex
}

func newIDGenerator() *idGenerator {
	return &idGenerator{}
}

// GetNext returns the next incremental number
func (g *idGenerator) GetNext() int64 {
	g.Lock()
	defer g.Unlock()
	g.id++
	return g.id
}
