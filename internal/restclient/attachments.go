// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package restclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// FilesField is the multipart field carrying uploaded files.
const FilesField = "files"

// AttachmentService implements saga.AttachmentRepository.
type AttachmentService struct{ c *Client }

// Attachments returns the attachment repository.
func (c *Client) Attachments() *AttachmentService { return &AttachmentService{c: c} }

func attachmentsPath(entityType, entityID string) string {
	return "/api/attachments/" + url.PathEscape(entityType) + "/" + url.PathEscape(entityID)
}

// Upload stores files for a new entity.
func (s *AttachmentService) Upload(ctx context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error) {
	return s.send(ctx, "upload attachments", http.MethodPost, entityType, entityID, files)
}

// Update replaces the entity's files with files.
func (s *AttachmentService) Update(ctx context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error) {
	return s.send(ctx, "update attachments", http.MethodPut, entityType, entityID, files)
}

// List returns the entity's files ordered by name.
func (s *AttachmentService) List(ctx context.Context, entityType, entityID string) ([]types.Attachment, error) {
	var out []types.Attachment
	if err := s.c.doJSON(ctx, "list attachments", http.MethodGet, attachmentsPath(entityType, entityID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one file of the entity.
func (s *AttachmentService) Delete(ctx context.Context, entityType, entityID, fileName string) error {
	path := attachmentsPath(entityType, entityID) + "/" + url.PathEscape(fileName)
	return s.c.doJSON(ctx, "delete attachment", http.MethodDelete, path, nil, nil)
}

func (s *AttachmentService) send(ctx context.Context, op, method, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error) {
	body, contentType, err := encodeFiles(files)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	req, err := s.c.newRequest(ctx, method, attachmentsPath(entityType, entityID), body, contentType)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	var out []types.Attachment
	if err := s.c.do(ctx, op, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// encodeFiles builds the multipart body in memory so the transport can
// replay it on retry.
func encodeFiles(files []types.FileUpload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FilesField, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating part for %s", f.Name)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", errors.Wrapf(err, "writing %s", f.Name)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart body")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
