package core

// PoolStats represents runtime observability state for a worker pool. It is
// a point-in-time snapshot; fields may already be stale when read.
type PoolStats struct {
	ID      string
	Workers int
	Queued  int
	Active  int
	Running bool
}
