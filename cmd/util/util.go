package util

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/buger/goterm"
	log "github.com/sirupsen/logrus"

	"github.com/sidkik/overlaysync/pkg/errors"
	"github.com/sidkik/overlaysync/pkg/overlay"
)

// exit is mocked out for unit testing.
var exit = os.Exit

type friendlyError interface {
	FriendlyMessage() string
}

// HandleFatalError prints the error and exits. Errors that have a friendly
// message are printed as is. Other errors are logged along with their
// context.
func HandleFatalError(err error) {
	if friendlyErr, ok := errors.RootCause(err).(friendlyError); ok {
		fmt.Fprintln(os.Stderr, friendlyErr.FriendlyMessage())
	} else {
		log.WithError(err).Error("Unexpected error")
	}
	exit(1)
}

// HandlePanic logs the panic and its stack trace before exiting. It should be
// deferred at the start of main.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("Panic: %v", r)
		exit(1)
	}
}

// NewActionLogger returns an overlay.Logger that prints each action on its
// own line. If `color` is set, creates and copies are printed in green, and
// removals in red.
func NewActionLogger(out io.Writer, color bool) overlay.Logger {
	return func(msg string) {
		if color {
			if c, ok := actionColor(msg); ok {
				msg = goterm.Color(msg, c)
			}
		}
		fmt.Fprintln(out, msg)
	}
}

func actionColor(msg string) (int, bool) {
	switch {
	case strings.HasPrefix(msg, "remove "):
		return goterm.RED, true
	case strings.HasPrefix(msg, "create "), strings.HasPrefix(msg, "copy "):
		return goterm.GREEN, true
	default:
		return 0, false
	}
}
