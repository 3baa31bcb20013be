// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Canonical field sets. Keys must match the json tags in models.
var (
	entryFields = fieldSet(
		"id", "groupId", "type", "title", "username", "password", "url",
		"notes", "autotypeExp", "iconPath", "isStarred", "creationDate",
		"lastAccessDate", "lastModificationDate", "cardholderName", "number",
		"expirationMonth", "expirationYear", "securityCode",
	)
	groupFields   = fieldSet("id", "name", "parent", "isImported", "creationDate")
	historyFields = fieldSet("id", "entryId", "entry")
	reportFields  = fieldSet("id", "type", "creationDate", "payload")
)

func fieldSet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// strip returns a copy of raw holding only keys present in allowed.
func strip(raw models.RawRow, allowed map[string]struct{}) models.RawRow {
	out := make(models.RawRow, len(allowed))
	for k, v := range raw {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}

func decodeRow(row models.RawRow, target any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(b, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// NormalizeEntry drops every non-canonical field from raw and decodes the
// rest into an [models.Entry].
func NormalizeEntry(raw models.RawRow) (models.Entry, error) {
	var e models.Entry
	if err := decodeRow(strip(raw, entryFields), &e); err != nil {
		return models.Entry{}, fmt.Errorf("normalize entry: %w", err)
	}
	return e, nil
}

// NormalizeGroup drops every non-canonical field from raw and decodes the
// rest into a [models.Group].
func NormalizeGroup(raw models.RawRow) (models.Group, error) {
	var g models.Group
	if err := decodeRow(strip(raw, groupFields), &g); err != nil {
		return models.Group{}, fmt.Errorf("normalize group: %w", err)
	}
	return g, nil
}

// NormalizeHistory normalizes a history row including its embedded entry
// snapshot.
func NormalizeHistory(raw models.RawRow) (models.HistoryEntry, error) {
	row := strip(raw, historyFields)

	var snapshot models.Entry
	if nested, ok := row["entry"]; ok {
		var entryRow models.RawRow
		if err := json.Unmarshal(nested, &entryRow); err != nil {
			return models.HistoryEntry{}, fmt.Errorf("normalize history: %w: %v", ErrInvalidDocument, err)
		}
		e, err := NormalizeEntry(entryRow)
		if err != nil {
			return models.HistoryEntry{}, fmt.Errorf("normalize history: %w", err)
		}
		snapshot = e
		delete(row, "entry")
	}

	var h models.HistoryEntry
	if err := decodeRow(row, &h); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("normalize history: %w", err)
	}
	h.Entry = snapshot
	return h, nil
}

// NormalizeReport drops every non-canonical field from raw and decodes the
// rest into a [models.Report].
func NormalizeReport(raw models.RawRow) (models.Report, error) {
	var r models.Report
	if err := decodeRow(strip(raw, reportFields), &r); err != nil {
		return models.Report{}, fmt.Errorf("normalize report: %w", err)
	}
	return r, nil
}

// NormalizeTables normalizes every row of every table. Empty tables come
// back as empty, non-nil slices.
func NormalizeTables(raw models.RawTables) (models.Tables, error) {
	t := models.Tables{
		Entries: make([]models.Entry, 0, len(raw.Entries)),
		Groups:  make([]models.Group, 0, len(raw.Groups)),
		History: make([]models.HistoryEntry, 0, len(raw.History)),
		Reports: make([]models.Report, 0, len(raw.Reports)),
	}

	for _, row := range raw.Entries {
		e, err := NormalizeEntry(row)
		if err != nil {
			return models.Tables{}, err
		}
		t.Entries = append(t.Entries, e)
	}
	for _, row := range raw.Groups {
		g, err := NormalizeGroup(row)
		if err != nil {
			return models.Tables{}, err
		}
		t.Groups = append(t.Groups, g)
	}
	for _, row := range raw.History {
		h, err := NormalizeHistory(row)
		if err != nil {
			return models.Tables{}, err
		}
		t.History = append(t.History, h)
	}
	for _, row := range raw.Reports {
		r, err := NormalizeReport(row)
		if err != nil {
			return models.Tables{}, err
		}
		t.Reports = append(t.Reports, r)
	}
	return t, nil
}

// ParseTables decodes a caller table export and normalizes it.
func ParseTables(data []byte) (models.Tables, error) {
	var raw models.RawTables
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Tables{}, fmt.Errorf("parse tables: %w: %v", ErrInvalidDocument, err)
	}
	return NormalizeTables(raw)
}
