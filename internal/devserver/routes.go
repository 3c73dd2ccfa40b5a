// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// FilesField is the multipart field carrying uploaded files.
const FilesField = "files"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	in, ok := bindProject(c)
	if !ok {
		return
	}
	p, err := s.store.CreateProject(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID})
}

func (s *Server) handleGetProject(c *gin.Context) {
	p, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	in, ok := bindProject(c)
	if !ok {
		return
	}
	p, err := s.store.UpdateProject(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetTyped(c *gin.Context) {
	typ, payload, err := s.store.GetTyped(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	rec := types.TypedRecord{Type: typ}
	switch typ {
	case types.ProjectPublication:
		rec.Publication = new(types.Publication)
		err = json.Unmarshal(payload, rec.Publication)
	case types.ProjectPatent:
		rec.Patent = new(types.Patent)
		err = json.Unmarshal(payload, rec.Patent)
	case types.ProjectResearch:
		rec.Research = new(types.Research)
		err = json.Unmarshal(payload, rec.Research)
	default:
		err = errors.Newf("stored typed record has unknown type %q", typ)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func bindProject(c *gin.Context) (types.ProjectInput, bool) {
	var in types.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return in, false
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := in.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return in, false
	}
	if !in.Type.Valid() {
		respondMessage(c, http.StatusBadRequest, "unknown project type "+string(in.Type))
		return in, false
	}
	return in, true
}

// collection describes one typed record route group.
type collection[Req, Rec any] struct {
	typ       types.ProjectType
	projectID func(Req) string
	record    func(id string, req Req) Rec
}

var publications = collection[types.PublicationRequest, types.Publication]{
	typ:       types.ProjectPublication,
	projectID: func(r types.PublicationRequest) string { return r.ProjectID },
	record: func(id string, r types.PublicationRequest) types.Publication {
		return types.Publication{
			ID:                id,
			ProjectID:         r.ProjectID,
			PublicationDate:   r.PublicationDate,
			PublicationSource: r.PublicationSource,
			DOIISBN:           r.DOIISBN,
			StartPage:         r.StartPage,
			EndPage:           r.EndPage,
			JournalVolume:     r.JournalVolume,
			IssueNumber:       r.IssueNumber,
			Authors:           r.Authors,
		}
	},
}

var patents = collection[types.PatentRequest, types.Patent]{
	typ:       types.ProjectPatent,
	projectID: func(r types.PatentRequest) string { return r.ProjectID },
	record: func(id string, r types.PatentRequest) types.Patent {
		return types.Patent{
			ID:                 id,
			ProjectID:          r.ProjectID,
			PrimaryAuthorID:    r.PrimaryAuthorID,
			RegistrationNumber: r.RegistrationNumber,
			RegistrationDate:   r.RegistrationDate,
			IssuingAuthority:   r.IssuingAuthority,
			CoInventors:        r.CoInventors,
		}
	},
}

var research = collection[types.ResearchRequest, types.Research]{
	typ:       types.ProjectResearch,
	projectID: func(r types.ResearchRequest) string { return r.ProjectID },
	record: func(id string, r types.ResearchRequest) types.Research {
		return types.Research{
			ID:             id,
			ProjectID:      r.ProjectID,
			ParticipantIDs: r.ParticipantIDs,
			Budget:         r.Budget,
			StartDate:      r.StartDate,
			EndDate:        r.EndDate,
			Status:         r.Status,
			FundingSource:  r.FundingSource,
		}
	},
}

// registerTyped mounts POST /name and PUT /name/:id for one collection.
func registerTyped[Req, Rec any](g *gin.RouterGroup, store *Store, name string, col collection[Req, Rec]) {
	bind := func(c *gin.Context) (Req, bool) {
		var req Req
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return req, false
		}
		if col.projectID(req) == "" {
			respondMessage(c, http.StatusBadRequest, "projectId is required")
			return req, false
		}
		return req, true
	}

	g.POST("/"+name, func(c *gin.Context) {
		req, ok := bind(c)
		if !ok {
			return
		}
		id := uuid.NewString()
		rec := col.record(id, req)
		if err := store.CreateTyped(c.Request.Context(), col.typ, id, col.projectID(req), rec); err != nil {
			failWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	})

	g.PUT("/"+name+"/:id", func(c *gin.Context) {
		req, ok := bind(c)
		if !ok {
			return
		}
		rec := col.record(c.Param("id"), req)
		if err := store.UpdateTyped(c.Request.Context(), col.typ, c.Param("id"), col.projectID(req), rec); err != nil {
			failWith(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})
}

func (s *Server) handleListAttachments(c *gin.Context) {
	out, err := s.store.ListAttachments(c.Request.Context(), c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handlePutAttachments(replace bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		entityType, entityID := c.Param("entityType"), c.Param("entityId")
		if _, err := s.store.GetProject(ctx, entityID); err != nil {
			s.fail(c, err)
			return
		}

		files, err := readFiles(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		out, err := s.store.PutAttachments(ctx, entityType, entityID, files, replace)
		if err != nil {
			s.fail(c, err)
			return
		}
		status := http.StatusCreated
		if replace {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}
}

func readFiles(c *gin.Context) ([]types.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrValidation), "reading multipart form")
	}
	headers := form.File[FilesField]
	if len(headers) == 0 {
		return nil, errors.Wrapf(errors.ErrValidation, "no %q files in request", FilesField)
	}
	files := make([]types.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", fh.Filename)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", fh.Filename)
		}
		files = append(files, types.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return files, nil
}

func (s *Server) handleDeleteAttachment(c *gin.Context) {
	err := s.store.DeleteAttachment(c.Request.Context(), c.Param("entityType"), c.Param("entityId"), c.Param("fileName"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleServeFile(c *gin.Context) {
	f, err := s.store.GetAttachment(c.Request.Context(), c.Param("entityType"), c.Param("entityId"), c.Param("fileName"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Data(http.StatusOK, ct, f.Content)
}

// fail responds with the status matching err and logs server faults.
func (s *Server) fail(c *gin.Context, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
	}
	failWith(c, err)
}

func failWith(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		respondMessage(c, status, "internal error")
		return
	}
	respondError(c, status, err)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
