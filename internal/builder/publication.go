// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package builder

import (
	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// PublicationCreate builds the create payload for the publication of projectID.
func PublicationCreate(projectID string, f *types.PublicationForm) (types.PublicationRequest, error) {
	if f == nil || f.PublicationDate == nil || f.PublicationDate.IsZero() {
		return types.PublicationRequest{}, &errors.MissingRequiredFieldError{
			Field:   "publicationDate",
			Message: MsgPublicationDateRequired,
		}
	}
	return types.PublicationRequest{
		ProjectID:         projectID,
		PublicationDate:   *f.PublicationDate,
		PublicationSource: f.PublicationSource,
		DOIISBN:           f.DOIISBN,
		StartPage:         intOr(f.StartPage, defaultNumber),
		EndPage:           intOr(f.EndPage, defaultNumber),
		JournalVolume:     intOr(f.JournalVolume, defaultNumber),
		IssueNumber:       intOr(f.IssueNumber, defaultNumber),
		Authors:           ids(f.Authors),
	}, nil
}

// PublicationUpdate builds the update payload for the existing publication
// publicationID of projectID.
func PublicationUpdate(projectID string, f *types.PublicationForm, publicationID string) (types.PublicationRequest, error) {
	if publicationID == "" {
		return types.PublicationRequest{}, missingID("publication", MsgPublicationIDMissing)
	}
	req, err := PublicationCreate(projectID, f)
	if err != nil {
		return types.PublicationRequest{}, err
	}
	req.ID = publicationID
	return req, nil
}
