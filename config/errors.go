package config

import "errors"

var (
	// ErrMissingModel indicates neither --model nor --help/--listmodels/
	// --listmethods was given.
	ErrMissingModel = errors.New("config: --model is required")
	// ErrMissingMethod indicates --method was never given.
	ErrMissingMethod = errors.New("config: --method is required")
	// ErrMissingData indicates no --data/--data1.. was given.
	ErrMissingData = errors.New("config: no data file given")
	// ErrUnknownDataOrder indicates --data-order named something other
	// than interleave/concatenate/singlefile.
	ErrUnknownDataOrder = errors.New("config: unknown --data-order value")
	// ErrNestedOptionFile indicates a -@ legacy option file itself
	// contained a -@ token, which spec §6 forbids.
	ErrNestedOptionFile = errors.New("config: -@ forbidden inside a -@ option file")
	// ErrOutputDirExhausted indicates every `+`-suffixed candidate name
	// up to the 50-attempt cap was already taken.
	ErrOutputDirExhausted = errors.New("config: could not find a free output directory after 50 attempts")
)
