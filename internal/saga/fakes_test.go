// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/research-projects/pkg/types"
)

// --- test helpers ---

// callLog records repository calls in the order they happened.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

func (l *callLog) count(prefix string) int {
	n := 0
	for _, c := range l.list() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type fakeProjects struct {
	log *callLog

	nextID    string
	createErr error
	getErr    error
	deleteErr error

	// updateErrs[i] is returned by the i-th Update call.
	updateErrs []error

	stored  *types.Project
	created []types.ProjectInput
	updates []types.ProjectInput
	deleted []string
	delCtx  context.Context
}

func (f *fakeProjects) Create(_ context.Context, in types.ProjectInput) (string, error) {
	f.log.add("projects.create")
	f.created = append(f.created, in)
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextID, nil
}

func (f *fakeProjects) Get(_ context.Context, id string) (*types.Project, error) {
	f.log.add("projects.get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := *f.stored
	return &p, nil
}

func (f *fakeProjects) Update(_ context.Context, id string, in types.ProjectInput) (*types.Project, error) {
	f.log.add("projects.update")
	n := len(f.updates)
	f.updates = append(f.updates, in)
	if n < len(f.updateErrs) && f.updateErrs[n] != nil {
		return nil, f.updateErrs[n]
	}
	return &types.Project{ID: id, Title: in.Title, Description: in.Description, Type: in.Type, Progress: in.Progress, TagIDs: in.TagIDs}, nil
}

func (f *fakeProjects) Delete(ctx context.Context, id string) error {
	f.log.add("projects.delete")
	f.deleted = append(f.deleted, id)
	f.delCtx = ctx
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.deleteErr
}

// fakeTyped serves any typed record repository.
type fakeTyped[Req, Rec any] struct {
	name string
	log  *callLog

	createErr error
	updateErr error

	// before runs at the start of every call, e.g. to block or cancel.
	before func(ctx context.Context)
	build  func(id string, req Req) *Rec

	creates []Req
	updates []Req
}

func (f *fakeTyped[Req, Rec]) Create(ctx context.Context, req Req) (*Rec, error) {
	f.log.add(f.name + ".create")
	if f.before != nil {
		f.before(ctx)
	}
	f.creates = append(f.creates, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.build(f.name+"-1", req), nil
}

func (f *fakeTyped[Req, Rec]) Update(ctx context.Context, id string, req Req) (*Rec, error) {
	f.log.add(f.name + ".update")
	if f.before != nil {
		f.before(ctx)
	}
	f.updates = append(f.updates, req)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.build(id, req), nil
}

type fakeAttachments struct {
	log *callLog

	uploadErr error
	updateErr error
	before    func()

	entityType string
	entityID   string
}

func (f *fakeAttachments) store(op, entityType, entityID string, files []types.FileUpload, err error) ([]types.Attachment, error) {
	f.log.add("attachments." + op)
	if f.before != nil {
		f.before()
	}
	if err != nil {
		return nil, err
	}
	f.entityType, f.entityID = entityType, entityID
	out := make([]types.Attachment, 0, len(files))
	for _, file := range files {
		out = append(out, types.Attachment{
			FileName:   file.Name,
			FileURL:    fmt.Sprintf("/files/%s/%s/%s", entityType, entityID, file.Name),
			EntityType: entityType,
			EntityID:   entityID,
			FileSize:   int64(len(file.Content)),
			UploadedAt: time.Now(),
		})
	}
	return out, nil
}

func (f *fakeAttachments) Upload(_ context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error) {
	return f.store("upload", entityType, entityID, files, f.uploadErr)
}

func (f *fakeAttachments) Update(_ context.Context, entityType, entityID string, files []types.FileUpload) ([]types.Attachment, error) {
	return f.store("update", entityType, entityID, files, f.updateErr)
}

func (f *fakeAttachments) Delete(_ context.Context, entityType, entityID, fileName string) error {
	f.log.add("attachments.delete")
	return nil
}

type harness struct {
	log      *callLog
	projects *fakeProjects
	pubs     *fakeTyped[types.PublicationRequest, types.Publication]
	patents  *fakeTyped[types.PatentRequest, types.Patent]
	research *fakeTyped[types.ResearchRequest, types.Research]
	atts     *fakeAttachments

	notes   []Notification
	logs    *observer.ObservedLogs
	metrics *Metrics
	orch    *Orchestrator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := &callLog{}
	h := &harness{
		log:      log,
		projects: &fakeProjects{log: log, nextID: "proj-1"},
		pubs: &fakeTyped[types.PublicationRequest, types.Publication]{
			name: "publications", log: log,
			build: func(id string, r types.PublicationRequest) *types.Publication {
				return &types.Publication{ID: id, ProjectID: r.ProjectID, PublicationDate: r.PublicationDate, Authors: r.Authors}
			},
		},
		patents: &fakeTyped[types.PatentRequest, types.Patent]{
			name: "patents", log: log,
			build: func(id string, r types.PatentRequest) *types.Patent {
				return &types.Patent{ID: id, ProjectID: r.ProjectID, PrimaryAuthorID: r.PrimaryAuthorID}
			},
		},
		research: &fakeTyped[types.ResearchRequest, types.Research]{
			name: "research", log: log,
			build: func(id string, r types.ResearchRequest) *types.Research {
				return &types.Research{ID: id, ProjectID: r.ProjectID, Budget: r.Budget, Status: r.Status}
			},
		},
		atts: &fakeAttachments{log: log},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	h.logs = logs
	h.metrics = NewMetrics(prometheus.NewRegistry())
	h.orch = New(Repositories{
		Projects:     h.projects,
		Publications: h.pubs,
		Patents:      h.patents,
		Research:     h.research,
		Attachments:  h.atts,
	},
		WithLogger(zap.New(core)),
		WithNotifier(NotifierFunc(func(n Notification) { h.notes = append(h.notes, n) })),
		WithMetrics(h.metrics),
	)
	return h
}

func (h *harness) kinds() []Kind {
	out := make([]Kind, 0, len(h.notes))
	for _, n := range h.notes {
		out = append(out, n.Kind)
	}
	return out
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func pdf(name string) types.FileUpload {
	return types.FileUpload{Name: name, ContentType: "application/pdf", Content: []byte("%PDF-1.7")}
}

func publicationInput() CreateInput {
	return CreateInput{
		Project: types.ProjectInput{Title: "Graph sagas", Type: types.ProjectPublication, Progress: 40, TagIDs: []string{"t-1"}},
		Typed: &types.TypedForm{Publication: &types.PublicationForm{
			PublicationDate: datePtr(2025, 5, 20),
			Authors:         []string{"u-1", "u-2"},
		}},
	}
}
