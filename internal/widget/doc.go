// Package widget implements the on-screen sliders and the callbacks that
// push slider values into the geometry sources.
package widget
