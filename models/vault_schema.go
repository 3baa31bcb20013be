// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// CurrentSchemaVersion is the vault schema version written by this build.
const CurrentSchemaVersion = 1

// Tables is the in-process row model of an open vault.
type Tables struct {
	Entries []Entry        `json:"entries"`
	Groups  []Group        `json:"groups"`
	History []HistoryEntry `json:"history"`
	Reports []Report       `json:"reports"`
}

// VaultSchema is the versioned document sealed inside a vault file.
type VaultSchema struct {
	SchemaVersion int    `json:"schemaVersion"`
	Tables        Tables `json:"tables"`
}

// RawRow is a row as exported by the caller's storage engine. It may carry
// engine-internal fields that are not part of the canonical entity shape.
type RawRow map[string]json.RawMessage

// RawTables is the not-yet-normalized counterpart of [Tables].
type RawTables struct {
	Entries []RawRow `json:"entries"`
	Groups  []RawRow `json:"groups"`
	History []RawRow `json:"history"`
	Reports []RawRow `json:"reports"`
}
