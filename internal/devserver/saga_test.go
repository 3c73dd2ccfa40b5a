// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package devserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/internal/restclient"
	"github.com/pdiddy/research-projects/internal/saga"
	"github.com/pdiddy/research-projects/pkg/types"
)

// failRoute answers matching requests with status instead of the server.
func failRoute(next http.Handler, method, path string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == method && r.URL.Path == path {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"injected failure"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sagaClient(t *testing.T, h http.Handler) *saga.Orchestrator {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c := restclient.New(types.ClientConfig{BaseURL: ts.URL}, restclient.StaticToken("secret"), nil)
	return saga.New(c.Repositories())
}

func TestSagaCreateEndToEnd(t *testing.T) {
	h, store, _ := setupTestServer(t, types.ServerConfig{AuthToken: "secret"})
	orch := sagaClient(t, h)
	date := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	out, err := orch.CreateProject(t.Context(), saga.CreateInput{
		Project: types.ProjectInput{Title: "Graph sagas", Type: types.ProjectPublication, Progress: 40},
		Typed:   &types.TypedForm{Publication: &types.PublicationForm{PublicationDate: &date}},
		Files:   []types.FileUpload{{Name: "paper.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}},
	})
	require.NoError(t, err)
	assert.Equal(t, saga.StateCommitted, out.State)
	require.NotNil(t, out.Typed.Publication)
	assert.Equal(t, out.ProjectID, out.Typed.Publication.ProjectID)
	assert.Equal(t, 1, out.Typed.Publication.StartPage)

	typ, _, err := store.GetTyped(t.Context(), out.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, types.ProjectPublication, typ)
	files, err := store.ListAttachments(t.Context(), saga.EntityPublication, out.ProjectID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "paper.pdf", files[0].FileName)
}

func TestSagaCreateRollsBackTypedFailure(t *testing.T) {
	h, store, _ := setupTestServer(t, types.ServerConfig{})
	orch := sagaClient(t, failRoute(h, http.MethodPost, "/api/research", http.StatusInternalServerError))

	_, err := orch.CreateProject(t.Context(), saga.CreateInput{
		Project: types.ProjectInput{Title: "Soil study", Type: types.ProjectResearch},
	})
	require.Error(t, err)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.True(t, sagaErr.RolledBack())
	assert.True(t, errors.Is(err, errors.ErrUnavailable))

	n, err := store.CountProjects(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n, "base project deleted by compensation")
}

func TestSagaCreateDuplicateTitle(t *testing.T) {
	h, store, _ := setupTestServer(t, types.ServerConfig{})
	orch := sagaClient(t, h)
	in := saga.CreateInput{
		Project: types.ProjectInput{Title: "Sensor", Type: types.ProjectPatent},
		Typed:   &types.TypedForm{Patent: &types.PatentForm{PrimaryAuthorID: "u-1"}},
	}

	_, err := orch.CreateProject(t.Context(), in)
	require.NoError(t, err)
	_, err = orch.CreateProject(t.Context(), in)
	require.Error(t, err)
	assert.Equal(t, errors.MsgConflict, errors.UserMessage(err))

	n, err := store.CountProjects(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSagaUpdateRevertsSnapshot(t *testing.T) {
	h, store, _ := setupTestServer(t, types.ServerConfig{})
	orch := sagaClient(t, h)

	created, err := orch.CreateProject(t.Context(), saga.CreateInput{
		Project: types.ProjectInput{Title: "Sensor", Description: "v1", Type: types.ProjectPatent, Progress: 10, TagIDs: []string{"t-1"}},
		Typed:   &types.TypedForm{Patent: &types.PatentForm{PrimaryAuthorID: "u-1"}},
	})
	require.NoError(t, err)

	failing := sagaClient(t, failRoute(h, http.MethodPut, "/api/patents/"+created.Typed.ID(), http.StatusBadGateway))
	_, err = failing.UpdateProject(t.Context(), saga.UpdateInput{
		ProjectID: created.ProjectID,
		Project:   types.ProjectInput{Title: "Sensor v2", Description: "v2", Type: types.ProjectPatent, Progress: 80},
		Typed:     &types.TypedForm{Patent: &types.PatentForm{PrimaryAuthorID: "u-2"}},
		TypedID:   created.Typed.ID(),
	})
	require.Error(t, err)

	p, err := store.GetProject(t.Context(), created.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Sensor", p.Title)
	assert.Equal(t, "v1", p.Description)
	assert.Equal(t, 10, p.Progress)
	assert.Equal(t, []string{"t-1"}, p.TagIDs)

	out, err := orch.UpdateProject(t.Context(), saga.UpdateInput{
		ProjectID: created.ProjectID,
		Project:   types.ProjectInput{Title: "Sensor v2", Type: types.ProjectPatent, Progress: 80},
		Typed:     &types.TypedForm{Patent: &types.PatentForm{PrimaryAuthorID: "u-2"}},
		TypedID:   created.Typed.ID(),
		Files:     []types.FileUpload{{Name: "claims.pdf", Content: []byte("c")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sensor v2", out.Project.Title)
	assert.Equal(t, "u-2", out.Typed.Patent.PrimaryAuthorID)
	assert.Len(t, out.Attachments, 1)
}
