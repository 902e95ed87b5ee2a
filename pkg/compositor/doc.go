// Package compositor renders one output frame from one source frame and a
// preset.
//
// Stages run in a fixed order and each one is skipped when its parameters are
// absent:
//
//  1. tone: saturate, brightness, contrast and hue-rotate, applied per pixel
//     in that order with the Filter Effects color-matrix definitions
//  2. vignette: a radial multiply overlay toward 50% black
//  3. sharpen: a 3x3 Laplacian added back onto the post-vignette colors
//
// The package keeps no state between calls.
package compositor
