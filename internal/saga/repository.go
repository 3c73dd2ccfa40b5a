// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"

	"github.com/pdiddy/research-projects/pkg/types"
)

// ProjectRepository persists base projects.
type ProjectRepository interface {
	// Create persists in and returns the generated project id.
	Create(ctx context.Context, in types.ProjectInput) (string, error)
	Get(ctx context.Context, id string) (*types.Project, error)
	Update(ctx context.Context, id string, in types.ProjectInput) (*types.Project, error)
	Delete(ctx context.Context, id string) error
}

// PublicationRepository persists publication records.
type PublicationRepository interface {
	Create(ctx context.Context, req types.PublicationRequest) (*types.Publication, error)
	Update(ctx context.Context, id string, req types.PublicationRequest) (*types.Publication, error)
}

// PatentRepository persists patent records.
type PatentRepository interface {
	Create(ctx context.Context, req types.PatentRequest) (*types.Patent, error)
	Update(ctx context.Context, id string, req types.PatentRequest) (*types.Patent, error)
}

// ResearchRepository persists research records.
type ResearchRepository interface {
	Create(ctx context.Context, req types.ResearchRequest) (*types.Research, error)
	Update(ctx context.Context, id string, req types.ResearchRequest) (*types.Research, error)
}

// AttachmentRepository stores files for an entity type and entity id.
type AttachmentRepository interface {
	Upload(ctx context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error)
	Update(ctx context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error)
	Delete(ctx context.Context, entityType, entityID, fileName string) error
}

// Repositories groups the collaborators a saga coordinates. There is no
// transaction spanning them.
type Repositories struct {
	Projects     ProjectRepository
	Publications PublicationRepository
	Patents      PatentRepository
	Research     ResearchRepository
	Attachments  AttachmentRepository
}
