package geometry

import "sync/atomic"

var clock atomic.Uint64

// TimeStamp orders modifications across all pipeline objects so a stage
// can tell whether an upstream stage changed since its last build.
type TimeStamp struct {
	t uint64
}

// Modified marks the stamp as newer than every stamp before it.
func (ts *TimeStamp) Modified() { ts.t = clock.Add(1) }

func (ts *TimeStamp) Time() uint64 { return ts.t }
