// Package prior implements the polymorphic prior variants of spec §4.3:
// Normal, ARD, Image, and four spatial flavours (M, m, P, p). Each variant
// contributes an additive (mu0, Lambda0) term to a parameter's effective
// prior; ParameterPrior.Combine sums those contributions by precision
// (precision-weighted mean) the way spec §4.3 describes, applying the
// ARD/spatial interaction rule from spec.md §9's open question: a spatial
// contribution on a parameter overrides that parameter's ARD contribution.
package prior
