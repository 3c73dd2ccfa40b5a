// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-projects/internal/builder"
	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

func priorPublication() *types.Project {
	return &types.Project{
		ID:          "proj-7",
		Title:       "Old title",
		Description: "Old description",
		Type:        types.ProjectPublication,
		Progress:    10,
		TagIDs:      []string{"t-1", "t-2"},
		CreatedBy:   "u-1",
	}
}

func publicationUpdate() UpdateInput {
	return UpdateInput{
		ProjectID: "proj-7",
		Project: types.ProjectInput{
			Title:    "New title",
			Type:     types.ProjectPublication,
			Progress: 70,
			TagIDs:   []string{"t-3"},
		},
		Prior:   priorPublication(),
		Typed:   &types.TypedForm{Publication: &types.PublicationForm{PublicationDate: datePtr(2025, 9, 1)}},
		TypedID: "pub-3",
	}
}

func TestUpdateProject_TypedFailureRevertsSnapshot(t *testing.T) {
	h := newHarness(t)
	h.pubs.updateErr = &errors.StatusError{Op: "update publication", StatusCode: http.StatusBadGateway}

	_, err := h.orch.UpdateProject(context.Background(), publicationUpdate())
	require.Error(t, err)

	var sagaErr *Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, OpUpdate, sagaErr.Op)
	assert.Equal(t, MsgUpdateRollback, sagaErr.Message)
	assert.True(t, sagaErr.RolledBack())

	require.Len(t, h.projects.updates, 2, "base update plus exactly one revert")
	assert.Equal(t, "New title", h.projects.updates[0].Title)
	assert.Equal(t, types.ProjectInput{
		Title:       "Old title",
		Description: "Old description",
		Type:        types.ProjectPublication,
		Progress:    10,
		TagIDs:      []string{"t-1", "t-2"},
	}, h.projects.updates[1])
	assert.Zero(t, h.log.count("projects.delete"))
	assert.Equal(t, []Kind{KindRollingBack}, h.kinds())
}

func TestUpdateProject_AttachmentFailureReverts(t *testing.T) {
	h := newHarness(t)
	h.atts.updateErr = errors.New("storage full")
	in := publicationUpdate()
	in.Files = []types.FileUpload{pdf("v2.pdf")}

	_, err := h.orch.UpdateProject(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, 1, h.log.count("publications.update"))
	assert.Equal(t, 1, h.log.count("attachments.update"))
	assert.Len(t, h.projects.updates, 2)
}

func TestUpdateProject_RevertFailureKeepsCause(t *testing.T) {
	h := newHarness(t)
	typedErr := errors.New("typed update failed")
	revertErr := errors.New("revert failed")
	h.pubs.updateErr = typedErr
	h.projects.updateErrs = []error{nil, revertErr}

	_, err := h.orch.UpdateProject(context.Background(), publicationUpdate())
	require.Error(t, err)

	assert.ErrorIs(t, err, typedErr)
	assert.NotErrorIs(t, err, revertErr)
	var sagaErr *Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, revertErr, sagaErr.CompensationErr)
	assert.Len(t, h.projects.updates, 2, "no second revert attempt")
	assert.Equal(t, []Kind{KindRollingBack, KindRollbackFailed}, h.kinds())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.compensations.WithLabelValues("update", "failed")))
}

func TestUpdateProject_NothingTypedNoFiles(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.Typed = nil
	in.TypedID = ""

	out, err := h.orch.UpdateProject(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []string{"projects.update"}, h.log.list())
	assert.Equal(t, StateCommitted, out.State)
	assert.Nil(t, out.Typed)
	require.NotNil(t, out.Project)
	assert.Equal(t, "New title", out.Project.Title)
	assert.Equal(t, []Notification{{Kind: KindSuccess, Message: MsgUpdated}}, h.notes)
}

func TestUpdateProject_Success(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.Files = []types.FileUpload{pdf("v2.pdf")}

	out, err := h.orch.UpdateProject(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, out.Typed)
	assert.Equal(t, "pub-3", out.Typed.ID())
	assert.Len(t, out.Attachments, 1)
	require.Len(t, h.pubs.updates, 1)
	assert.Equal(t, "proj-7", h.pubs.updates[0].ProjectID)
	assert.Equal(t, "pub-3", h.pubs.updates[0].ID)
	assert.Len(t, h.projects.updates, 1)
}

func TestUpdateProject_DoesNotSendCreator(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.Project.CreatedBy = "u-9"

	_, err := h.orch.UpdateProject(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, h.projects.updates, 1)
	assert.Empty(t, h.projects.updates[0].CreatedBy)
	assert.Equal(t, "New title", h.projects.updates[0].Title)
	assert.Equal(t, "u-9", in.Project.CreatedBy)
}

func TestUpdateProject_FetchesPriorWhenMissing(t *testing.T) {
	h := newHarness(t)
	h.projects.stored = priorPublication()
	h.pubs.updateErr = errors.New("boom")
	in := publicationUpdate()
	in.Prior = nil

	_, err := h.orch.UpdateProject(context.Background(), in)
	require.Error(t, err)

	assert.Equal(t, "projects.get", h.log.list()[0])
	require.Len(t, h.projects.updates, 2)
	assert.Equal(t, "Old title", h.projects.updates[1].Title)
}

func TestUpdateProject_PriorFetchFailure(t *testing.T) {
	h := newHarness(t)
	h.projects.getErr = &errors.StatusError{Op: "get project", StatusCode: http.StatusNotFound}
	in := publicationUpdate()
	in.Prior = nil

	_, err := h.orch.UpdateProject(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, []string{"projects.get"}, h.log.list())
}

func TestUpdateProject_BaseFailureNoRevert(t *testing.T) {
	h := newHarness(t)
	h.projects.updateErrs = []error{&errors.StatusError{Op: "update project", StatusCode: http.StatusForbidden}}

	_, err := h.orch.UpdateProject(context.Background(), publicationUpdate())
	require.Error(t, err)

	var sagaErr *Error
	require.ErrorAs(t, err, &sagaErr)
	assert.False(t, sagaErr.Compensated)
	assert.Equal(t, errors.MsgPermission, sagaErr.Message)
	assert.Equal(t, []string{"projects.update"}, h.log.list())
}

func TestUpdateProject_MissingTypedID(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.TypedID = ""

	_, err := h.orch.UpdateProject(context.Background(), in)
	var noID *errors.MissingIdentifierError
	require.ErrorAs(t, err, &noID)
	assert.Equal(t, builder.MsgPublicationIDMissing, noID.Message)
	assert.Empty(t, h.log.list())
}

func TestUpdateProject_TypeChangeRejected(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.Project.Type = types.ProjectResearch
	in.Typed = nil

	_, err := h.orch.UpdateProject(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Equal(t, MsgTypeChanged, errors.UserMessage(err))
	assert.Empty(t, h.log.list())
}

func TestUpdateProject_MissingProjectID(t *testing.T) {
	h := newHarness(t)
	in := publicationUpdate()
	in.ProjectID = ""

	_, err := h.orch.UpdateProject(context.Background(), in)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Empty(t, h.log.list())
}

func TestUpdateProject_DispatchesToMatchingVariant(t *testing.T) {
	h := newHarness(t)
	prior := priorPublication()
	prior.Type = types.ProjectPatent

	_, err := h.orch.UpdateProject(context.Background(), UpdateInput{
		ProjectID: "proj-7",
		Project:   types.ProjectInput{Title: "Patent", Type: types.ProjectPatent},
		Prior:     prior,
		Typed:     &types.TypedForm{Patent: &types.PatentForm{PrimaryAuthorID: "u-9"}},
		TypedID:   "pat-2",
		Files:     []types.FileUpload{pdf("drawing.pdf")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.log.count("patents.update"))
	assert.Zero(t, h.log.count("publications."))
	assert.Zero(t, h.log.count("research."))
	assert.Equal(t, EntityPatent, h.atts.entityType)
}
