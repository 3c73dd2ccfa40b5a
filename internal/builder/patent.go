// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package builder

import (
	"strings"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// PatentCreate builds the create payload for the patent of projectID.
// A missing registration date defaults to now.
func PatentCreate(projectID string, f *types.PatentForm) (types.PatentRequest, error) {
	if f == nil || strings.TrimSpace(f.PrimaryAuthorID) == "" {
		return types.PatentRequest{}, &errors.MissingRequiredFieldError{
			Field:   "primaryAuthorId",
			Message: MsgPrimaryAuthorRequired,
		}
	}
	return types.PatentRequest{
		ProjectID:          projectID,
		PrimaryAuthorID:    f.PrimaryAuthorID,
		RegistrationNumber: f.RegistrationNumber,
		RegistrationDate:   dateOr(f.RegistrationDate),
		IssuingAuthority:   f.IssuingAuthority,
		CoInventors:        ids(f.CoInventors),
	}, nil
}

// PatentUpdate builds the update payload for the existing patent patentID.
func PatentUpdate(projectID string, f *types.PatentForm, patentID string) (types.PatentRequest, error) {
	if patentID == "" {
		return types.PatentRequest{}, missingID("patent", MsgPatentIDMissing)
	}
	req, err := PatentCreate(projectID, f)
	if err != nil {
		return types.PatentRequest{}, err
	}
	req.ID = patentID
	return req, nil
}
