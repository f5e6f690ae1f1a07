// Command propflow resolves layered project properties from the command
// line.
package main

import (
	"fmt"
	"os"

	perrors "github.com/randalmurphal/propflow/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, perrors.Explain(err))
		os.Exit(1)
	}
}
