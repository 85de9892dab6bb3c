// Package config implements spec §6's CLI and option-file surface:
// `--key=value`/boolean long flags via pflag, `-f`/`-@` option files
// spliced into the argument stream before parsing, and the output
// directory's `+`-suffix collision policy.
package config
