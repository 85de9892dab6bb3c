package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fabber-go/fabber/internal/runerr"
)

// expandOptionFiles splices -f and -@ option files into args, in the
// position they were given, so the result is one flat token stream
// pflag can parse as if every option had been given on the command
// line directly (spec §6).
func expandOptionFiles(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			i++
			if i >= len(args) {
				return nil, runerr.New(runerr.KindInvalidOption, "-f given with no filename", nil)
			}
			tokens, err := readOptionFile(args[i])
			if err != nil {
				return nil, err
			}
			out = append(out, tokens...)
		case "-@":
			i++
			if i >= len(args) {
				return nil, runerr.New(runerr.KindInvalidOption, "-@ given with no filename", nil)
			}
			tokens, err := readLegacyOptionFile(args[i])
			if err != nil {
				return nil, err
			}
			out = append(out, tokens...)
		default:
			out = append(out, args[i])
		}
	}
	return out, nil
}

// readOptionFile reads -f's format: one --key=value (or boolean --key)
// per line, # starts a comment running to end of line, leading/trailing
// whitespace stripped, blank lines ignored.
func readOptionFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapOptionFileErr(path, err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, runerr.New(runerr.KindDataLoad, "reading option file "+path, err)
	}
	return tokens, nil
}

// readLegacyOptionFile reads -@'s format: whitespace-separated tokens,
// no comment syntax, and -@ itself forbidden inside the file.
func readLegacyOptionFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapOptionFileErr(path, err)
	}
	tokens := strings.Fields(string(data))
	for _, t := range tokens {
		if t == "-@" {
			return nil, runerr.New(runerr.KindInvalidOption, "in "+path, ErrNestedOptionFile)
		}
	}
	return tokens, nil
}

func wrapOptionFileErr(path string, err error) error {
	if os.IsNotExist(err) {
		return runerr.New(runerr.KindDataNotFound, fmt.Sprintf("option file %s", path), err)
	}
	return runerr.New(runerr.KindDataLoad, fmt.Sprintf("option file %s", path), err)
}
