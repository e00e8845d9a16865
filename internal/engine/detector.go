// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// ChangeDetector computes fingerprints of scene snapshots.
//
// A snapshot is canonicalized before hashing: object keys are sorted and
// insignificant whitespace dropped, numbers keep their textual form. Two
// snapshots that differ only in key order therefore share a fingerprint.
// Input that is not valid JSON is hashed as raw bytes.
type ChangeDetector struct{}

func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// Fingerprint returns the BLAKE2b-256 digest of the canonical form of state.
func (d *ChangeDetector) Fingerprint(state models.SceneState) models.Fingerprint {
	canonical, ok := canonicalize(state)
	if !ok {
		canonical = state
	}
	return models.Fingerprint(utils.HashString(canonical))
}

// IsDuplicate reports whether candidate matches the last seen fingerprint.
// Nothing is a duplicate of the empty fingerprint.
func (d *ChangeDetector) IsDuplicate(candidate, last models.Fingerprint) bool {
	return last != "" && candidate == last
}

func canonicalize(state models.SceneState) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(state))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// anything but the end of input after the value, a stray ] or } included,
	// makes the snapshot malformed
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return out, true
}
