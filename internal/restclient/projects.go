// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package restclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/research-projects/pkg/types"
)

// ProjectService implements saga.ProjectRepository.
type ProjectService struct{ c *Client }

// Projects returns the base project repository.
func (c *Client) Projects() *ProjectService { return &ProjectService{c: c} }

func projectPath(id string) string { return "/api/projects/" + url.PathEscape(id) }

// Create posts in and returns the id the server assigned.
func (s *ProjectService) Create(ctx context.Context, in types.ProjectInput) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := s.c.doJSON(ctx, "create project", http.MethodPost, "/api/projects", in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*types.Project, error) {
	var p types.Project
	if err := s.c.doJSON(ctx, "get project", http.MethodGet, projectPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in types.ProjectInput) (*types.Project, error) {
	var p types.Project
	if err := s.c.doJSON(ctx, "update project", http.MethodPut, projectPath(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.c.doJSON(ctx, "delete project", http.MethodDelete, projectPath(id), nil, nil)
}

// Typed returns the typed record attached to project id.
func (s *ProjectService) Typed(ctx context.Context, id string) (*types.TypedRecord, error) {
	var rec types.TypedRecord
	if err := s.c.doJSON(ctx, "get typed record", http.MethodGet, projectPath(id)+"/typed", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
