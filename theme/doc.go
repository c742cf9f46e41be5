// Package theme holds the named bundles of per-level colors, symbols and
// box-drawing glyphs used by the console renderer.
//
// Themes are values. Selecting one is a configuration choice, not a code
// branch: pass Default, Minimal, Ocean or Neon (or look one up with
// ByName) to the logger's configuration.
package theme
