// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"

	"github.com/pdiddy/research-projects/internal/builder"
	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// Attachment entity types, one per typed record variant.
const (
	EntityPublication = "publications"
	EntityPatent      = "patents"
	EntityResearch    = "research"
)

// EntityFor returns the attachment entity type for project type t.
func EntityFor(t types.ProjectType) (string, bool) {
	switch t {
	case types.ProjectPublication:
		return EntityPublication, true
	case types.ProjectPatent:
		return EntityPatent, true
	case types.ProjectResearch:
		return EntityResearch, true
	}
	return "", false
}

// typedCall sends a prepared typed request. Create calls receive the project
// id assigned by the base step; update calls already carry it.
type typedCall func(ctx context.Context, projectID string) (*types.TypedRecord, error)

// variant binds a project type to its request builder, repository and
// attachment entity type. Implementations are closed to this package.
type variant interface {
	entityType() string

	// prepareCreate validates f and returns the call that creates the record.
	prepareCreate(f *types.TypedForm) (typedCall, error)

	// prepareUpdate returns nil when f carries no values for this variant.
	prepareUpdate(projectID string, f *types.TypedForm, typedID string) (typedCall, error)
}

// variantFor is total over the known project types. Any other tag is a
// programming error and never falls back to a default variant.
func (o *Orchestrator) variantFor(t types.ProjectType) (variant, error) {
	switch t {
	case types.ProjectPublication:
		return publicationVariant{repo: o.repos.Publications}, nil
	case types.ProjectPatent:
		return patentVariant{repo: o.repos.Patents}, nil
	case types.ProjectResearch:
		return researchVariant{repo: o.repos.Research}, nil
	}
	return nil, errors.AssertionFailedf("no typed record handler for project type %q", t)
}

// checkForm rejects forms populated for a variant other than t.
func checkForm(t types.ProjectType, f *types.TypedForm) error {
	if f == nil {
		return nil
	}
	if (f.Publication != nil && t != types.ProjectPublication) ||
		(f.Patent != nil && t != types.ProjectPatent) ||
		(f.Research != nil && t != types.ProjectResearch) {
		return errors.AssertionFailedf("typed form does not match project type %q", t)
	}
	return nil
}

type publicationVariant struct{ repo PublicationRepository }

func (publicationVariant) entityType() string { return EntityPublication }

func (v publicationVariant) prepareCreate(f *types.TypedForm) (typedCall, error) {
	var form *types.PublicationForm
	if f != nil {
		form = f.Publication
	}
	req, err := builder.PublicationCreate("", form)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, projectID string) (*types.TypedRecord, error) {
		req.ProjectID = projectID
		rec, err := v.repo.Create(ctx, req)
		if err != nil {
			return nil, errors.Wrap(err, "creating publication")
		}
		return &types.TypedRecord{Type: types.ProjectPublication, Publication: rec}, nil
	}, nil
}

func (v publicationVariant) prepareUpdate(projectID string, f *types.TypedForm, typedID string) (typedCall, error) {
	if f == nil || f.Publication == nil {
		return nil, nil
	}
	req, err := builder.PublicationUpdate(projectID, f.Publication, typedID)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, _ string) (*types.TypedRecord, error) {
		rec, err := v.repo.Update(ctx, typedID, req)
		if err != nil {
			return nil, errors.Wrapf(err, "updating publication %s", typedID)
		}
		return &types.TypedRecord{Type: types.ProjectPublication, Publication: rec}, nil
	}, nil
}

type patentVariant struct{ repo PatentRepository }

func (patentVariant) entityType() string { return EntityPatent }

func (v patentVariant) prepareCreate(f *types.TypedForm) (typedCall, error) {
	var form *types.PatentForm
	if f != nil {
		form = f.Patent
	}
	req, err := builder.PatentCreate("", form)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, projectID string) (*types.TypedRecord, error) {
		req.ProjectID = projectID
		rec, err := v.repo.Create(ctx, req)
		if err != nil {
			return nil, errors.Wrap(err, "creating patent")
		}
		return &types.TypedRecord{Type: types.ProjectPatent, Patent: rec}, nil
	}, nil
}

func (v patentVariant) prepareUpdate(projectID string, f *types.TypedForm, typedID string) (typedCall, error) {
	if f == nil || f.Patent == nil {
		return nil, nil
	}
	req, err := builder.PatentUpdate(projectID, f.Patent, typedID)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, _ string) (*types.TypedRecord, error) {
		rec, err := v.repo.Update(ctx, typedID, req)
		if err != nil {
			return nil, errors.Wrapf(err, "updating patent %s", typedID)
		}
		return &types.TypedRecord{Type: types.ProjectPatent, Patent: rec}, nil
	}, nil
}

type researchVariant struct{ repo ResearchRepository }

func (researchVariant) entityType() string { return EntityResearch }

func (v researchVariant) prepareCreate(f *types.TypedForm) (typedCall, error) {
	var form *types.ResearchForm
	if f != nil {
		form = f.Research
	}
	req, err := builder.ResearchCreate("", form)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, projectID string) (*types.TypedRecord, error) {
		req.ProjectID = projectID
		rec, err := v.repo.Create(ctx, req)
		if err != nil {
			return nil, errors.Wrap(err, "creating research")
		}
		return &types.TypedRecord{Type: types.ProjectResearch, Research: rec}, nil
	}, nil
}

func (v researchVariant) prepareUpdate(projectID string, f *types.TypedForm, typedID string) (typedCall, error) {
	if f == nil || f.Research == nil {
		return nil, nil
	}
	req, err := builder.ResearchUpdate(projectID, f.Research, typedID)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, _ string) (*types.TypedRecord, error) {
		rec, err := v.repo.Update(ctx, typedID, req)
		if err != nil {
			return nil, errors.Wrapf(err, "updating research %s", typedID)
		}
		return &types.TypedRecord{Type: types.ProjectResearch, Research: rec}, nil
	}, nil
}
