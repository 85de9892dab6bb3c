// Package transform implements the monotone bijections between
// "model-space" parameters (what the forward model consumes) and the
// internally-Gaussian "fabber-space" variable the VB posterior is stored
// in: identity, log, and softplus (spec §4.2).
package transform
