// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// UpdateInput is everything needed to update one project.
type UpdateInput struct {
	ProjectID string
	Project   types.ProjectInput

	// Prior is the project state before the update. It is fetched when nil.
	Prior *types.Project

	// Typed and TypedID are optional. TypedID is required once Typed
	// carries values for the project's variant.
	Typed   *types.TypedForm
	TypedID string

	// Files replace the project's attachments when non-empty.
	Files []types.FileUpload
}

// UpdateProject updates the base project, then the typed record and the
// attachments concurrently. If either branch fails the prior snapshot is
// re-sent as a whole. With no typed values and no files the saga commits on
// the base update alone.
func (o *Orchestrator) UpdateProject(ctx context.Context, in UpdateInput) (*Outcome, error) {
	id := in.ProjectID
	o.phase(OpUpdate, StateIdle, zap.String("project_id", id), zap.String("type", string(in.Project.Type)))

	if id == "" {
		return nil, o.fail(OpUpdate, "", &errors.MissingIdentifierError{Entity: "project", Message: errors.MsgNotFound})
	}
	v, err := o.variantFor(in.Project.Type)
	if err != nil {
		return nil, o.fail(OpUpdate, id, err)
	}
	if err := checkForm(in.Project.Type, in.Typed); err != nil {
		return nil, o.fail(OpUpdate, id, err)
	}
	if len(in.Files) > 0 && o.repos.Attachments == nil {
		return nil, o.fail(OpUpdate, id, errors.AssertionFailedf("files given but no attachment repository configured"))
	}
	if err := in.Project.Validate(); err != nil {
		return nil, o.fail(OpUpdate, id, errors.Invalid(err, errors.MsgValidation))
	}
	updateTyped, err := v.prepareUpdate(id, in.Typed, in.TypedID)
	if err != nil {
		return nil, o.fail(OpUpdate, id, err)
	}

	prior := in.Prior
	if prior == nil {
		prior, err = o.repos.Projects.Get(ctx, id)
		if err != nil {
			return nil, o.fail(OpUpdate, id, errors.Wrapf(err, "loading project %s", id))
		}
	}
	if prior.Type != "" && prior.Type != in.Project.Type {
		return nil, o.fail(OpUpdate, id, errors.Invalid(
			errors.Newf("project type cannot change from %s to %s", prior.Type, in.Project.Type), MsgTypeChanged))
	}
	snapshot := prior.Input()

	o.phase(OpUpdate, StateUpdatingBase, zap.String("project_id", id))
	// The creator is fixed at creation time.
	payload := in.Project
	payload.CreatedBy = ""
	updated, err := o.repos.Projects.Update(ctx, id, payload)
	if err != nil {
		return nil, o.fail(OpUpdate, id, errors.Wrapf(err, "updating project %s", id))
	}

	out := &Outcome{ProjectID: id, Project: updated}
	var tasks []task
	if updateTyped != nil {
		tasks = append(tasks, func(ctx context.Context) error {
			rec, err := updateTyped(ctx, id)
			out.Typed = rec
			return err
		})
	}
	if len(in.Files) > 0 {
		tasks = append(tasks, func(ctx context.Context) error {
			atts, err := o.repos.Attachments.Update(ctx, v.entityType(), id, in.Files)
			if err != nil {
				return errors.Wrapf(err, "replacing %d attachment(s)", len(in.Files))
			}
			out.Attachments = atts
			return nil
		})
	}
	if len(tasks) == 0 {
		return o.commit(OpUpdate, out, MsgUpdated), nil
	}

	o.phase(OpUpdate, StateJoining, zap.String("project_id", id), zap.Int("files", len(in.Files)))
	if err := join(ctx, tasks...); err != nil {
		return nil, o.compensate(ctx, OpUpdate, id, MsgUpdateRollback, err, func(ctx context.Context) error {
			_, err := o.repos.Projects.Update(ctx, id, snapshot)
			return err
		})
	}
	return o.commit(OpUpdate, out, MsgUpdated), nil
}
