package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"trackflow/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			reportError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// reportError prints the failure and, when the error means durable state was
// not updated, tells the operator the document on disk is intact.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	if faults.IsPersistence(err) {
		fmt.Fprintln(w, "the album state on disk was left unchanged")
	}
}
