package config

import (
	"fmt"
	"os"
)

// Exitf prints the message to stderr and terminates with status 1.
// The mains use it for flag and config failures that happen before the
// log prefix is set.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
