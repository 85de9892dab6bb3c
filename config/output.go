package config

import (
	"os"

	"github.com/fabber-go/fabber/internal/runerr"
)

// outputDirAttempts bounds the `+`-suffix search of spec §6's output
// directory collision policy.
const outputDirAttempts = 50

// ResolveOutputDir creates requested as the run's output directory. If
// overwrite is true, an existing directory is reused (MkdirAll). If not,
// and requested already exists, a `+` is appended and tried again, up to
// outputDirAttempts times, before giving up (spec §6 scenario 6).
func ResolveOutputDir(requested string, overwrite bool) (string, error) {
	if overwrite {
		if err := os.MkdirAll(requested, 0o755); err != nil {
			return "", runerr.New(runerr.KindDataLoad, "creating output directory "+requested, err)
		}
		return requested, nil
	}

	candidate := requested
	for attempt := 0; attempt < outputDirAttempts; attempt++ {
		err := os.Mkdir(candidate, 0o755)
		if err == nil {
			return candidate, nil
		}
		if !os.IsExist(err) {
			return "", runerr.New(runerr.KindDataLoad, "creating output directory "+candidate, err)
		}
		candidate += "+"
	}
	return "", runerr.New(runerr.KindDataLoad, "output directory "+requested, ErrOutputDirExhausted)
}
