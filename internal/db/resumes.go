package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveResume inserts a new resume when id is nil, otherwise updates the
// owner's existing resume. It returns the resume ID.
func (db *DB) SaveResume(ctx context.Context, owner string, id *uuid.UUID, doc types.Resume) (uuid.UUID, error) {
	document, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	title := DeriveTitle(doc)

	if id == nil {
		var newID uuid.UUID
		err := db.pool.QueryRow(ctx,
			`INSERT INTO resumes (owner_email, title, document)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			owner, title, document,
		).Scan(&newID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
		}
		return newID, nil
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET title = $3, document = $4, updated_at = NOW()
		 WHERE id = $1 AND owner_email = $2`,
		*id, owner, title, document,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return uuid.Nil, &NotFoundError{ID: *id}
	}
	return *id, nil
}

const resumeColumns = `id, owner_email, title, document, share_token, share_enabled, created_at, updated_at`

func scanResume(row pgx.Row) (*ResumeRecord, error) {
	var r ResumeRecord
	var document []byte
	if err := row.Scan(&r.ID, &r.OwnerEmail, &r.Title, &document, &r.ShareToken,
		&r.ShareEnabled, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Document = document
	return &r, nil
}

// GetResume retrieves a resume by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	record, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return record, nil
}

// GetSharedResume retrieves a resume by its share token. Returns nil, nil
// when the token is unknown or sharing is disabled.
func (db *DB) GetSharedResume(ctx context.Context, token string) (*ResumeRecord, error) {
	if token == "" {
		return nil, nil
	}
	record, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE share_token = $1 AND share_enabled`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shared resume: %w", err)
	}
	return record, nil
}

// ListResumes returns the owner's resumes, most recently updated first
func (db *DB) ListResumes(ctx context.Context, owner string) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, share_enabled, created_at, updated_at
		 FROM resumes WHERE owner_email = $1
		 ORDER BY updated_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ShareEnabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return summaries, nil
}

// DeleteResume deletes one of the owner's resumes
func (db *DB) DeleteResume(ctx context.Context, owner string, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND owner_email = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// SetShare enables or disables the public link of a resume and returns its
// token. The token is created on first enable and kept afterwards, so
// re-enabling restores the same link. Disabled sharing returns "".
func (db *DB) SetShare(ctx context.Context, owner string, id uuid.UUID, enabled bool) (string, error) {
	var token *string
	err := db.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET share_enabled = $3,
		     share_token = CASE WHEN $3 AND share_token IS NULL THEN $4 ELSE share_token END,
		     updated_at = NOW()
		 WHERE id = $1 AND owner_email = $2
		 RETURNING share_token`,
		id, owner, enabled, newShareToken(),
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &NotFoundError{ID: id}
		}
		return "", fmt.Errorf("failed to update share settings: %w", err)
	}
	if !enabled || token == nil {
		return "", nil
	}
	return *token, nil
}
