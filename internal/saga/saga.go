// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package saga persists a research project across three independent REST
// collaborators: the base project, exactly one typed record (publication,
// patent or research) and optional file attachments. No transaction spans
// them, so the Orchestrator sequences the calls itself and compensates when
// a later step fails.
//
// Create path:
//
//	idle -> creating_base -> joining{typed || attachments} -> committed
//	                                   \-> compensating_rollback (delete base) -> failed
//
// Update path: the prior project snapshot is captured, the base is updated,
// then the typed update and the attachment replacement are joined. On join
// failure the whole prior snapshot is re-sent.
//
// Compensation is best-effort. Its failure is logged and recorded on the
// returned *Error, and the original failure is what the caller receives.
// The orchestrator performs no retries and enforces no timeouts; concurrent
// sagas on the same project are not serialized.
package saga

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
)

// Orchestrator coordinates the project saga.
type Orchestrator struct {
	repos    Repositories
	notifier Notifier
	logger   *zap.Logger
	metrics  *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithNotifier sets where outcome messages go. The default discards them.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithMetrics records run and compensation counters.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New returns an Orchestrator over repos.
func New(repos Repositories, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		repos:    repos,
		notifier: discard{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) phase(op Op, s State, fields ...zap.Field) {
	o.logger.Debug("project saga", append([]zap.Field{
		zap.String("op", string(op)),
		zap.String("state", string(s)),
	}, fields...)...)
}

// fail ends a run before anything was persisted or before the base step
// succeeded. No compensation is needed.
func (o *Orchestrator) fail(op Op, projectID string, cause error) *Error {
	if errors.HasAssertionFailure(cause) {
		o.logger.Error("project saga misconfigured",
			zap.String("op", string(op)), zap.Error(cause))
	}
	msg := errors.UserMessage(cause)
	o.notifier.Notify(Notification{Kind: kindOf(cause), Message: msg})
	o.phase(op, StateFailed, zap.String("project_id", projectID), zap.Error(cause))
	o.metrics.observeRun(op, StateFailed)
	return &Error{Op: op, ProjectID: projectID, Message: msg, Cause: cause}
}

// compensate runs undo once, after the downstream failure cause. The undo
// runs on a context detached from the caller's cancellation so an abandoned
// saga still attempts its repair.
func (o *Orchestrator) compensate(ctx context.Context, op Op, projectID, message string, cause error, undo func(context.Context) error) *Error {
	o.phase(op, StateCompensatingRollback, zap.String("project_id", projectID), zap.Error(cause))
	o.notifier.Notify(Notification{Kind: KindRollingBack, Message: message})

	compErr := undo(context.WithoutCancel(ctx))
	o.metrics.observeCompensation(op, compErr)
	if compErr != nil {
		o.logger.Error("project rollback failed",
			zap.String("op", string(op)),
			zap.String("project_id", projectID),
			zap.NamedError("cause", cause),
			zap.Error(compErr))
		o.notifier.Notify(Notification{Kind: KindRollbackFailed, Message: MsgRollbackFailed})
	}

	o.phase(op, StateFailed, zap.String("project_id", projectID))
	o.metrics.observeRun(op, StateFailed)
	return &Error{
		Op:              op,
		ProjectID:       projectID,
		Message:         message,
		Cause:           cause,
		Compensated:     true,
		CompensationErr: compErr,
	}
}

func (o *Orchestrator) commit(op Op, out *Outcome, message string) *Outcome {
	out.State = StateCommitted
	o.phase(op, StateCommitted, zap.String("project_id", out.ProjectID))
	o.notifier.Notify(Notification{Kind: KindSuccess, Message: message})
	o.metrics.observeRun(op, StateCommitted)
	return out
}
