package cli

import (
	"errors"
	"fmt"

	"github.com/mmed-hajnasr/do-me/internal/store"
)

var errNoTerminal = errors.New("the interactive UI needs a terminal; use a subcommand (see do-me --help) for scripting")

// describe renders err for stderr. Store errors get an actionable hint.
func describe(err error) string {
	var dup *store.DuplicateNameError
	var nf *store.NotFoundError
	switch {
	case errors.As(err, &dup):
		return fmt.Sprintf("error: %s (names must be unique)", dup.Error())
	case errors.As(err, &nf):
		return fmt.Sprintf("error: %s (use the id or the exact name)", nf.Error())
	default:
		return "error: " + err.Error()
	}
}
