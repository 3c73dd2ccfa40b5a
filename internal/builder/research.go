// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package builder

import (
	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// ResearchCreate builds the create payload for the research record of
// projectID. Research has no required field: a nil form yields a planned
// record starting now with no budget. The end date is never defaulted.
func ResearchCreate(projectID string, f *types.ResearchForm) (types.ResearchRequest, error) {
	if f == nil {
		f = &types.ResearchForm{}
	}
	var budget float64
	if f.Budget != nil {
		if *f.Budget < 0 {
			return types.ResearchRequest{}, &errors.InvalidFieldError{Field: "budget", Message: MsgNegativeBudget}
		}
		budget = *f.Budget
	}
	status := f.Status
	if status == "" {
		status = types.ResearchPlanned
	}
	return types.ResearchRequest{
		ProjectID:      projectID,
		ParticipantIDs: ids(f.ParticipantIDs),
		Budget:         budget,
		StartDate:      dateOr(f.StartDate),
		EndDate:        f.EndDate,
		Status:         status,
		FundingSource:  f.FundingSource,
	}, nil
}

// ResearchUpdate builds the update payload for the existing research record researchID.
func ResearchUpdate(projectID string, f *types.ResearchForm, researchID string) (types.ResearchRequest, error) {
	if researchID == "" {
		return types.ResearchRequest{}, missingID("research", MsgResearchIDMissing)
	}
	req, err := ResearchCreate(projectID, f)
	if err != nil {
		return types.ResearchRequest{}, err
	}
	req.ID = researchID
	return req, nil
}
