// Package geometry builds the triangle meshes a molecule is drawn with.
//
// The pipeline is demand driven:
//
//   - [SphereSource]: UV sphere with theta/phi resolution
//   - [Glyph3D]: copies a source mesh to every atom position
//   - [TubeFilter]: sweeps an n-sided cross-section along bonds
//
// Each stage carries a [TimeStamp]. Setters bump the stamp only when the
// value actually changes, and Output rebuilds only when the stage or one of
// its upstream producers is newer than the last build.
//
// # Thread Safety
//
// Stages are NOT thread-safe. Glyph3D fans its own work out to a worker
// pool internally but must be driven from a single goroutine.
package geometry
