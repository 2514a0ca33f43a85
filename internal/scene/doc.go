// Package scene wires a parsed structure into renderable actors: a sphere
// glyphed onto every atom and tubes around every bond, with the lighting
// properties and resolution heuristic the viewers share.
package scene
