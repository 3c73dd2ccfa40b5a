// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research projects: the
// base project, the typed records that accompany it (publication, patent,
// research), their form inputs and request payloads, and file attachments.
package types

import (
	"fmt"
	"time"
)

// ProjectType tags which typed record accompanies a project.
type ProjectType string

const (
	ProjectPublication ProjectType = "PUBLICATION"
	ProjectPatent      ProjectType = "PATENT"
	ProjectResearch    ProjectType = "RESEARCH"
)

// ProjectTypes lists every known project type in display order.
var ProjectTypes = []ProjectType{ProjectPublication, ProjectPatent, ProjectResearch}

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectPublication, ProjectPatent, ProjectResearch:
		return true
	}
	return false
}

// Project is the base project record owned by the project repository.
type Project struct {
	// ID is assigned by the repository on create.
	ID string `json:"id" yaml:"id"`

	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Type        ProjectType `json:"type" yaml:"type"`

	// Progress is a completion percentage between 0 and 100.
	Progress int `json:"progress" yaml:"progress"`

	// TagIDs references tags attached to the project.
	TagIDs []string `json:"tagIds" yaml:"tag_ids"`

	// CreatedBy references the creator. It is set only at creation.
	CreatedBy string `json:"createdBy,omitempty" yaml:"created_by,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Input returns the writable fields of p. The update path re-sends this
// whole snapshot to revert a project to its prior state.
func (p Project) Input() ProjectInput {
	tags := make([]string, len(p.TagIDs))
	copy(tags, p.TagIDs)
	return ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Progress:    p.Progress,
		TagIDs:      tags,
	}
}

// ProjectInput is the payload for creating or updating a base project.
type ProjectInput struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Type        ProjectType `json:"type" yaml:"type"`
	Progress    int         `json:"progress" yaml:"progress"`
	TagIDs      []string    `json:"tagIds" yaml:"tag_ids"`

	// CreatedBy is honoured by the repository only on create.
	CreatedBy string `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
}

// Validate checks the fields a repository would reject outright.
// It does not check Type; unknown types are a dispatch concern.
func (in ProjectInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if in.Progress < 0 || in.Progress > 100 {
		return fmt.Errorf("project progress %d out of range 0-100", in.Progress)
	}
	return nil
}
