package tui

import "errors"

// ErrAborted is returned when the user interrupts a prompt session.
var ErrAborted = errors.New("tui: aborted")
