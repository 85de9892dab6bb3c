package config

// DataOrder selects how multiple --data1, --data2, ... volumes combine
// into one per-voxel timeseries (spec §6).
type DataOrder int

const (
	// Interleave combines multi-file data timepoint-by-timepoint:
	// t0 from file 1, t0 from file 2, ..., t1 from file 1, ...
	Interleave DataOrder = iota
	// Concatenate appends each file's full timeseries in order.
	Concatenate
	// SingleFile means exactly one data file already holds the whole
	// timeseries; the default when only --data is given.
	SingleFile
)

func (d DataOrder) String() string {
	switch d {
	case Interleave:
		return "interleave"
	case Concatenate:
		return "concatenate"
	case SingleFile:
		return "singlefile"
	default:
		return "unknown"
	}
}

func dataOrderFromString(s string) (DataOrder, error) {
	switch s {
	case "interleave":
		return Interleave, nil
	case "concatenate":
		return Concatenate, nil
	case "singlefile", "":
		return SingleFile, nil
	default:
		return 0, ErrUnknownDataOrder
	}
}

// Options is the fully-resolved result of parsing argv plus any spliced
// -f/-@ option files: the well-known flags spec §6 names structurally,
// and Raw, the full set of every --key[=value] token seen (including the
// well-known ones), for forwarding to a model's Factory.
type Options struct {
	Method string
	Model  string

	DataFiles []string // in use order; single entry when DataOrder==SingleFile
	MaskFile  string
	DataOrder DataOrder

	Output    string
	Overwrite bool

	Help        bool
	ListMethods bool
	ListModels  bool
	LoadModels  string

	Raw map[string]string
}

// Bool reports whether key was given as a boolean flag or with a
// value recognised as true ("true", "1", "yes"). Used by callers reading
// the --save-* output-selection flags out of Raw.
func (o *Options) Bool(key string) bool {
	v, ok := o.Raw[key]
	if !ok {
		return false
	}
	switch v {
	case "", "true", "1", "yes":
		return true
	default:
		return false
	}
}
