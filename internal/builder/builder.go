// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package builder turns typed form values into create and update request
// payloads for publication, patent and research records. Builders are pure:
// they validate and apply defaults, and never touch the network.
//
// Create builders require the field needed to address the record after
// creation (publication date, primary author). Update builders additionally
// require the id of the existing typed record and report its absence as a
// MissingIdentifierError before any other validation runs.
package builder

import (
	"time"

	"github.com/pdiddy/research-projects/internal/errors"
)

// now supplies default dates. Tests override it for determinism.
var now = time.Now

// defaultNumber is the value for page, volume and issue fields left empty.
const defaultNumber = 1

// User-facing validation messages.
const (
	MsgPublicationDateRequired = "Потрібно вказати дату публікації"
	MsgPrimaryAuthorRequired   = "Потрібно вказати основного автора"
	MsgPublicationIDMissing    = "Відсутній ідентифікатор публікації"
	MsgPatentIDMissing         = "Відсутній ідентифікатор патенту"
	MsgResearchIDMissing       = "Відсутній ідентифікатор дослідження"
	MsgNegativeBudget          = "Бюджет не може бути від'ємним"
)

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func dateOr(v *time.Time) time.Time {
	if v == nil || v.IsZero() {
		return now()
	}
	return *v
}

// ids returns a copy of in, never nil, so requests always encode a JSON array.
func ids(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func missingID(entity, message string) error {
	return &errors.MissingIdentifierError{Entity: entity, Message: message}
}
