// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package devserver

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

// MemoryDB keeps the whole database in memory.
const MemoryDB = ":memory:"

// Store persists projects, typed records and attachments in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenStore opens or creates the database at path and creates the schema
// if it does not exist.
func OpenStore(path string) (*Store, error) {
	dsn := "file::memory:?_foreign_keys=on"
	if path != MemoryDB {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
		dsn = path + "?_journal_mode=WAL&_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// One connection: serializes writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			description TEXT,
			type TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			tag_ids TEXT,
			created_by TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS typed_records (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL UNIQUE REFERENCES projects(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			content_type TEXT,
			content BLOB,
			file_size INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			uploaded_at TEXT NOT NULL,
			PRIMARY KEY (entity_type, entity_id, file_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_typed_records_type ON typed_records(type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// isUnique reports whether err is a UNIQUE or PRIMARY KEY violation.
func isUnique(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func encodeIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

func decodeIDs(s sql.NullString) []string {
	ids := []string{}
	if s.Valid && s.String != "" {
		json.Unmarshal([]byte(s.String), &ids)
	}
	return ids
}

// CreateProject inserts in with a new id. Titles are unique.
func (s *Store) CreateProject(ctx context.Context, in types.ProjectInput) (*types.Project, error) {
	now := s.now()
	p := &types.Project{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Progress:    in.Progress,
		TagIDs:      append([]string{}, in.TagIDs...),
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, type, progress, tag_ids, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, string(p.Type), p.Progress, encodeIDs(p.TagIDs), p.CreatedBy,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if isUnique(err) {
		return nil, errors.Wrapf(errors.ErrConflict, "project %q already exists", in.Title)
	}
	if err != nil {
		return nil, errors.Wrap(err, "inserting project")
	}
	return p, nil
}

// GetProject returns the project with id.
func (s *Store) GetProject(ctx context.Context, id string) (*types.Project, error) {
	var (
		p                    types.Project
		typ, created, update string
		desc, tags, by       sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, type, progress, tag_ids, created_by, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &desc, &typ, &p.Progress, &tags, &by, &created, &update)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "project %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying project")
	}
	p.Description = desc.String
	p.Type = types.ProjectType(typ)
	p.TagIDs = decodeIDs(tags)
	p.CreatedBy = by.String
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, update)
	return &p, nil
}

// UpdateProject overwrites the writable fields of project id. CreatedBy is
// never changed after creation.
func (s *Store) UpdateProject(ctx context.Context, id string, in types.ProjectInput) (*types.Project, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, type = ?, progress = ?, tag_ids = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Description, string(in.Type), in.Progress, encodeIDs(in.TagIDs),
		s.now().Format(time.RFC3339Nano), id)
	if isUnique(err) {
		return nil, errors.Wrapf(errors.ErrConflict, "project %q already exists", in.Title)
	}
	if err != nil {
		return nil, errors.Wrap(err, "updating project")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "project %s", id)
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes project id, its typed record and its attachments.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting project")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "project %s", id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE entity_id = ?`, id); err != nil {
		return errors.Wrap(err, "deleting attachments")
	}
	return tx.Commit()
}

// CountProjects returns the number of stored projects.
func (s *Store) CountProjects(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM projects`).Scan(&n)
	return n, err
}

// CreateTyped stores rec as the typed record of projectID. The project must
// exist, have type typ, and not have a typed record yet.
func (s *Store) CreateTyped(ctx context.Context, typ types.ProjectType, id, projectID string, rec any) error {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if p.Type != typ {
		return errors.Wrapf(errors.ErrValidation, "project %s has type %s, not %s", projectID, p.Type, typ)
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encoding %s record", typ)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO typed_records (id, project_id, type, payload) VALUES (?, ?, ?, ?)`,
		id, projectID, string(typ), string(payload))
	if isUnique(err) {
		return errors.Wrapf(errors.ErrConflict, "project %s already has a typed record", projectID)
	}
	if err != nil {
		return errors.Wrapf(err, "inserting %s record", typ)
	}
	return nil
}

// UpdateTyped replaces the payload of typed record id belonging to projectID.
func (s *Store) UpdateTyped(ctx context.Context, typ types.ProjectType, id, projectID string, rec any) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encoding %s record", typ)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE typed_records SET payload = ? WHERE id = ? AND project_id = ? AND type = ?`,
		string(payload), id, projectID, string(typ))
	if err != nil {
		return errors.Wrapf(err, "updating %s record", typ)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %s of project %s", typ, id, projectID)
	}
	return nil
}

// GetTyped returns the type and JSON payload of projectID's typed record.
func (s *Store) GetTyped(ctx context.Context, projectID string) (types.ProjectType, []byte, error) {
	var typ, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT type, payload FROM typed_records WHERE project_id = ?`, projectID,
	).Scan(&typ, &payload)
	if err == sql.ErrNoRows {
		return "", nil, errors.Wrapf(errors.ErrNotFound, "typed record of project %s", projectID)
	}
	if err != nil {
		return "", nil, errors.Wrap(err, "querying typed record")
	}
	return types.ProjectType(typ), []byte(payload), nil
}

// StoredFile is an attachment with its content.
type StoredFile struct {
	types.Attachment
	ContentType string
	Content     []byte
}

// PutAttachments stores files for the entity. With replace set, existing
// files of the entity are removed first; otherwise a duplicate name is a
// conflict.
func (s *Store) PutAttachments(ctx context.Context, entityType, entityID string, files []types.FileUpload, replace bool) ([]types.Attachment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM attachments WHERE entity_type = ? AND entity_id = ?`, entityType, entityID); err != nil {
			return nil, errors.Wrap(err, "clearing attachments")
		}
	}

	now := s.now()
	out := make([]types.Attachment, 0, len(files))
	for _, f := range files {
		sum := sha256.Sum256(f.Content)
		a := types.Attachment{
			FileName:   f.Name,
			FileURL:    fileURL(entityType, entityID, f.Name),
			EntityType: entityType,
			EntityID:   entityID,
			UploadedAt: now,
			FileSize:   int64(len(f.Content)),
			Checksum:   hex.EncodeToString(sum[:]),
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO attachments (entity_type, entity_id, file_name, content_type, content, file_size, checksum, uploaded_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entityType, entityID, f.Name, f.ContentType, f.Content, a.FileSize, a.Checksum, now.Format(time.RFC3339Nano))
		if isUnique(err) {
			return nil, errors.Wrapf(errors.ErrConflict, "attachment %s already exists", f.Name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "inserting attachment %s", f.Name)
		}
		out = append(out, a)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing attachments")
	}
	return out, nil
}

// GetAttachment returns one stored file.
func (s *Store) GetAttachment(ctx context.Context, entityType, entityID, fileName string) (*StoredFile, error) {
	f := StoredFile{Attachment: types.Attachment{EntityType: entityType, EntityID: entityID, FileName: fileName}}
	var ct sql.NullString
	var uploaded string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_type, content, file_size, checksum, uploaded_at FROM attachments
		 WHERE entity_type = ? AND entity_id = ? AND file_name = ?`, entityType, entityID, fileName,
	).Scan(&ct, &f.Content, &f.FileSize, &f.Checksum, &uploaded)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "attachment %s", fileName)
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying attachment")
	}
	f.ContentType = ct.String
	f.FileURL = fileURL(entityType, entityID, fileName)
	f.UploadedAt, _ = time.Parse(time.RFC3339Nano, uploaded)
	return &f, nil
}

// ListAttachments returns the attachments of an entity ordered by name.
func (s *Store) ListAttachments(ctx context.Context, entityType, entityID string) ([]types.Attachment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_name, file_size, checksum, uploaded_at FROM attachments
		 WHERE entity_type = ? AND entity_id = ? ORDER BY file_name`, entityType, entityID)
	if err != nil {
		return nil, errors.Wrap(err, "querying attachments")
	}
	defer rows.Close()

	out := []types.Attachment{}
	for rows.Next() {
		a := types.Attachment{EntityType: entityType, EntityID: entityID}
		var uploaded string
		if err := rows.Scan(&a.FileName, &a.FileSize, &a.Checksum, &uploaded); err != nil {
			return nil, errors.Wrap(err, "scanning attachment")
		}
		a.FileURL = fileURL(entityType, entityID, a.FileName)
		a.UploadedAt, _ = time.Parse(time.RFC3339Nano, uploaded)
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAttachment removes one stored file.
func (s *Store) DeleteAttachment(ctx context.Context, entityType, entityID, fileName string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE entity_type = ? AND entity_id = ? AND file_name = ?`,
		entityType, entityID, fileName)
	if err != nil {
		return errors.Wrap(err, "deleting attachment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "attachment %s", fileName)
	}
	return nil
}

func fileURL(entityType, entityID, fileName string) string {
	return "/files/" + entityType + "/" + entityID + "/" + fileName
}
