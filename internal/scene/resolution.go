package scene

import (
	"errors"
	"fmt"
	"math"
)

const (
	// ResolutionNumerator sets where the falloff crosses the clamp bounds:
	// 750 atoms or fewer get MaxResolution, 18750 or more get MinResolution.
	ResolutionNumerator = 300000.0
	MinResolution       = 4.0
	MaxResolution       = 20.0
)

// ErrInvalidAtomCount indicates a resolution was requested for an empty
// or negative atom count.
var ErrInvalidAtomCount = errors.New("scene: atom count must be positive")

// InitialResolution picks a tessellation resolution for a structure with
// atomCount atoms: sqrt(300000/atomCount) clamped to [4, 20], so large
// structures get coarser spheres and tubes.
func InitialResolution(atomCount int) (float64, error) {
	if atomCount <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAtomCount, atomCount)
	}
	r := math.Sqrt(ResolutionNumerator / float64(atomCount))
	if r > MaxResolution {
		r = MaxResolution
	}
	if r < MinResolution {
		r = MinResolution
	}
	return r, nil
}
