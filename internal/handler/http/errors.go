// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	errHijackUnsupported = errors.New("response writer does not support hijacking")
	errUnsupportedType   = errors.New("unsupported message type")
	errMalformedMessage  = errors.New("malformed message")
)
