package search

import "github.com/poiesic/searchit/core"

// BuildMonitor provides hooks to observe the embedding build process.
// Implement this interface to track cache effectiveness and progress.
type BuildMonitor interface {
	Start(docCount int)
	CacheHit(docID string)
	CacheMiss(docID string)
	CacheInvalidated(docID string)
	Embedded(count int)
	Finish(rows []core.DocVector)
}

// noopBuildMonitor is a no-op implementation of BuildMonitor
type noopBuildMonitor struct{}

var _ BuildMonitor = (*noopBuildMonitor)(nil)

func (n *noopBuildMonitor) Start(_ int)               {}
func (n *noopBuildMonitor) CacheHit(_ string)         {}
func (n *noopBuildMonitor) CacheMiss(_ string)        {}
func (n *noopBuildMonitor) CacheInvalidated(_ string) {}
func (n *noopBuildMonitor) Embedded(_ int)            {}
func (n *noopBuildMonitor) Finish(_ []core.DocVector) {}

// CountingBuildMonitor tallies build events. Useful for progress reporting
// and tests.
type CountingBuildMonitor struct {
	Docs        int
	Hits        int
	Misses      int
	Invalidated int
	NewVectors  int
}

var _ BuildMonitor = (*CountingBuildMonitor)(nil)

func (c *CountingBuildMonitor) Start(docCount int)        { c.Docs = docCount }
func (c *CountingBuildMonitor) CacheHit(_ string)         { c.Hits++ }
func (c *CountingBuildMonitor) CacheMiss(_ string)        { c.Misses++ }
func (c *CountingBuildMonitor) CacheInvalidated(_ string) { c.Invalidated++ }
func (c *CountingBuildMonitor) Embedded(count int)        { c.NewVectors += count }
func (c *CountingBuildMonitor) Finish(_ []core.DocVector) {}
