// Package nlls is the non-linear least-squares fallback for
// --method=nlls: plain Gauss-Newton in model space with step-halving
// backtracking, no priors and no free-energy bookkeeping. It exists so
// nlls is a valid CLI method value per spec §6; vb/spatialvb remain the
// fully-developed inference paths.
package nlls
