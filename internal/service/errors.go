// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrEmptyRoom            = errors.New("room name is empty")
	ErrEmptyTemplateName    = errors.New("template name is empty")
	ErrEmptyTemplateID      = errors.New("template id is empty")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrSnapshot             = errors.New("error taking scene snapshot")
	ErrApplyTemplate        = errors.New("error applying template")
	ErrNoAdapter            = errors.New("no scene adapter given")
	ErrInvalidDocumentEntry = errors.New("invalid document entry")
)
