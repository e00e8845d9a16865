// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type templateRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewTemplateRepository(db *DB, logger *logger.Logger) TemplateRepository {
	logger.Debug().Msg("creating template repository")
	return &templateRepository{
		db:     db,
		logger: logger,
	}
}

// ListTemplates returns templates newest first.
func (r *templateRepository) ListTemplates(ctx context.Context) ([]models.Template, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTemplatesQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("failed to list templates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	templates := make([]models.Template, 0, 8)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("failed to scan template")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return templates, nil
}

func (r *templateRepository) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	query, args, err := buildGetTemplateQuery(r.db.builder(), id)
	if err != nil {
		return models.Template{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, ErrTemplateNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.GetTemplate").Str("id", id).Msg("failed to get template")
		return models.Template{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return t, nil
}

func (r *templateRepository) SaveTemplate(ctx context.Context, t models.Template) error {
	query, args, err := buildInsertTemplateQuery(r.db.builder(), t)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrTemplateAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.SaveTemplate").Str("id", t.ID).Msg("failed to save template")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query, args, err := buildDeleteTemplateQuery(r.db.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.DeleteTemplate").Str("id", id).Msg("failed to delete template")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (models.Template, error) {
	var (
		t          models.Template
		canvasData string
		createdAt  time.Time
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Thumbnail, &canvasData, &createdAt); err != nil {
		return models.Template{}, err
	}
	t.CanvasData = models.SceneState(canvasData)
	t.CreatedAt = createdAt
	return t, nil
}

func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique)
}
