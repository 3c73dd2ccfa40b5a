// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-projects/pkg/types"
)

// projectFile is the YAML input for create and update. At most one of the
// typed sections is set.
//
//	project:
//	  title: Graph sagas
//	  type: PUBLICATION
//	  progress: 40
//	publication:
//	  publication_date: 2025-05-20
//	  authors: [u-1, u-2]
type projectFile struct {
	Project     types.ProjectInput     `yaml:"project"`
	Publication *types.PublicationForm `yaml:"publication,omitempty"`
	Patent      *types.PatentForm      `yaml:"patent,omitempty"`
	Research    *types.ResearchForm    `yaml:"research,omitempty"`

	// TypedID addresses the typed record on update.
	TypedID string `yaml:"typed_id,omitempty"`
}

func (f *projectFile) typedForm() *types.TypedForm {
	form := &types.TypedForm{Publication: f.Publication, Patent: f.Patent, Research: f.Research}
	if form.Empty() {
		return nil
	}
	return form
}

func readProjectFile(path string) (*projectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	var f projectFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing input %s: %w", path, err)
	}
	return &f, nil
}

// readUploads loads each path as an attachment, guessing its content type
// from the extension or, failing that, the content.
func readUploads(paths []string) ([]types.FileUpload, error) {
	files := make([]types.FileUpload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", p, err)
		}
		ct := mime.TypeByExtension(filepath.Ext(p))
		if ct == "" {
			ct = http.DetectContentType(data)
		}
		files = append(files, types.FileUpload{Name: filepath.Base(p), ContentType: ct, Content: data})
	}
	return files, nil
}
