package main

import (
	"fmt"
	"io"
	"os"
)

// stderr is where error messages go; tests replace it.
var stderr io.Writer = os.Stderr

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError writes an error message to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	os.Exit(outputError(code, format, args...))
}
