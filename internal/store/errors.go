// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrDocumentNotFound is returned when a room has no persisted slots.
	ErrDocumentNotFound = errors.New("room document was not found")

	// ErrTemplateNotFound is returned when no template has the requested ID.
	ErrTemplateNotFound = errors.New("template was not found")

	// ErrTemplateAlreadyExists is returned when a template ID is reused.
	ErrTemplateAlreadyExists = errors.New("template already exists")

	// ErrUnsupportedDriver is returned for a driver other than sqlite3 and
	// postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrRetryable marks failures the classifier considers transient.
	ErrRetryable = errors.New("transient database error")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
