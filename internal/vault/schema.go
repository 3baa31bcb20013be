// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-pass-vault/models"
)

// supportedVersions lists every schema version this build reads and writes.
var supportedVersions = []int{models.CurrentSchemaVersion}

// IsSupported reports whether version can be read and written.
func IsSupported(version int) bool {
	return slices.Contains(supportedVersions, version)
}

func checkVersion(version int) error {
	if !IsSupported(version) {
		return fmt.Errorf("%w: %d", ErrSchemaVersionUnsupported, version)
	}
	return nil
}

// ToVaultSchema wraps tables into a versioned document.
func ToVaultSchema(tables models.Tables, version int) (models.VaultSchema, error) {
	if err := checkVersion(version); err != nil {
		return models.VaultSchema{}, err
	}
	return models.VaultSchema{SchemaVersion: version, Tables: withEmptyTables(tables)}, nil
}

// FromVaultSchema unwraps a versioned document. It is the inverse of
// [ToVaultSchema].
func FromVaultSchema(schema models.VaultSchema) (models.Tables, error) {
	if err := checkVersion(schema.SchemaVersion); err != nil {
		return models.Tables{}, err
	}
	return withEmptyTables(schema.Tables), nil
}

// Encode serializes a document to JSON.
func Encode(schema models.VaultSchema) ([]byte, error) {
	if err := checkVersion(schema.SchemaVersion); err != nil {
		return nil, err
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode vault schema: %w", err)
	}
	return b, nil
}

// Decode parses a JSON document. The version is checked before the tables
// are looked at, so a document from a newer build is never partially read.
func Decode(data []byte) (models.VaultSchema, error) {
	var probe struct {
		SchemaVersion *int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.VaultSchema{}, fmt.Errorf("decode vault schema: %w: %v", ErrInvalidDocument, err)
	}
	if probe.SchemaVersion == nil {
		return models.VaultSchema{}, fmt.Errorf("decode vault schema: %w: missing", ErrSchemaVersionUnsupported)
	}
	if err := checkVersion(*probe.SchemaVersion); err != nil {
		return models.VaultSchema{}, fmt.Errorf("decode vault schema: %w", err)
	}

	var doc struct {
		SchemaVersion int              `json:"schemaVersion"`
		Tables        models.RawTables `json:"tables"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.VaultSchema{}, fmt.Errorf("decode vault schema: %w: %v", ErrInvalidDocument, err)
	}
	tables, err := NormalizeTables(doc.Tables)
	if err != nil {
		return models.VaultSchema{}, fmt.Errorf("decode vault schema: %w", err)
	}
	return models.VaultSchema{SchemaVersion: doc.SchemaVersion, Tables: tables}, nil
}

func withEmptyTables(t models.Tables) models.Tables {
	if t.Entries == nil {
		t.Entries = []models.Entry{}
	}
	if t.Groups == nil {
		t.Groups = []models.Group{}
	}
	if t.History == nil {
		t.History = []models.HistoryEntry{}
	}
	if t.Reports == nil {
		t.Reports = []models.Report{}
	}
	return t
}
