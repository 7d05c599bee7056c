package utils

import (
	"fmt"
	"strings"
	"time"
)

// TimeTrack reports how long a measured phase took; the bench task defers it
// around the incremental and from-scratch update loops.
func TimeTrack(start time.Time, name string) {
	fmt.Printf("%s took %s\n", name, time.Since(start))
}

// VerbosePrint prints only when -verbose is set, e.g. the per-update
// verification progress of the verify task.
func VerbosePrint(format string, a ...interface{}) (n int, err error) {
	if Opts().Verbose() {
		return fmt.Printf(format, a...)
	}
	return 0, nil
}

// CanColorize gates a colorization function on the -no-colorize flag.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}
