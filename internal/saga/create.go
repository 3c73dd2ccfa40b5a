// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// CreateInput is everything needed to create one project.
type CreateInput struct {
	Project types.ProjectInput
	Typed   *types.TypedForm
	Files   []types.FileUpload
}

// CreateProject creates the base project, then its typed record and, when
// files are given, the attachments concurrently. If either branch fails the
// base project is deleted and a *Error with Compensated set is returned.
//
// Validation and dispatch errors are reported before any repository call.
// A failure of the base step itself needs no compensation.
func (o *Orchestrator) CreateProject(ctx context.Context, in CreateInput) (*Outcome, error) {
	o.phase(OpCreate, StateIdle, zap.String("type", string(in.Project.Type)))

	v, err := o.variantFor(in.Project.Type)
	if err != nil {
		return nil, o.fail(OpCreate, "", err)
	}
	if err := checkForm(in.Project.Type, in.Typed); err != nil {
		return nil, o.fail(OpCreate, "", err)
	}
	if len(in.Files) > 0 && o.repos.Attachments == nil {
		return nil, o.fail(OpCreate, "", errors.AssertionFailedf("files given but no attachment repository configured"))
	}
	if err := in.Project.Validate(); err != nil {
		return nil, o.fail(OpCreate, "", errors.Invalid(err, errors.MsgValidation))
	}
	createTyped, err := v.prepareCreate(in.Typed)
	if err != nil {
		return nil, o.fail(OpCreate, "", err)
	}

	o.phase(OpCreate, StateCreatingBase)
	id, err := o.repos.Projects.Create(ctx, in.Project)
	if err != nil {
		return nil, o.fail(OpCreate, "", errors.Wrap(err, "creating project"))
	}

	out := &Outcome{ProjectID: id}
	tasks := []task{func(ctx context.Context) error {
		rec, err := createTyped(ctx, id)
		out.Typed = rec
		return err
	}}
	if len(in.Files) > 0 {
		tasks = append(tasks, func(ctx context.Context) error {
			atts, err := o.repos.Attachments.Upload(ctx, v.entityType(), id, in.Files)
			if err != nil {
				return errors.Wrapf(err, "uploading %d attachment(s)", len(in.Files))
			}
			out.Attachments = atts
			return nil
		})
	}

	o.phase(OpCreate, StateJoining, zap.String("project_id", id), zap.Int("files", len(in.Files)))
	if err := join(ctx, tasks...); err != nil {
		return nil, o.compensate(ctx, OpCreate, id, MsgCreateRollback, err, func(ctx context.Context) error {
			return o.repos.Projects.Delete(ctx, id)
		})
	}
	return o.commit(OpCreate, out, MsgCreated), nil
}
