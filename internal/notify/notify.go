// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify renders saga notifications on a terminal.
package notify

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/pdiddy/research-projects/internal/saga"
)

// Terminal prints notifications with pterm prefix printers.
type Terminal struct {
	w io.Writer
}

// NewTerminal returns a Terminal writing to w, or stderr when w is nil.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stderr
	}
	return &Terminal{w: w}
}

func (t *Terminal) Notify(n saga.Notification) {
	printerFor(n.Kind).WithWriter(t.w).Println(n.Message)
}

func printerFor(k saga.Kind) pterm.PrefixPrinter {
	switch k {
	case saga.KindSuccess:
		return pterm.Success
	case saga.KindRollingBack, saga.KindValidation, saga.KindConflict:
		return pterm.Warning
	}
	return pterm.Error
}

// Discard drops every notification.
var Discard saga.Notifier = saga.NotifierFunc(func(saga.Notification) {})
