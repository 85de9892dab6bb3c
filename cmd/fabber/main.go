// Command fabber runs spec §6's CLI: parse options, build the forward
// model/priors/noise for the requested method, run inference over every
// voxel, and write the output volumes and log file.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := runE(args); err != nil {
		fmt.Fprintln(os.Stderr, "fabber:", err)
		return 1
	}
	return 0
}
