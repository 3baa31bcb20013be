// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Group is a folder that entries are organised into.
type Group struct {
	ID int64 `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// Parent is the ID of the enclosing group, nil for top-level groups.
	Parent *int64 `json:"parent,omitempty"`

	// IsImported marks groups created by an import from another manager.
	IsImported bool `json:"isImported,omitempty"`

	CreationDate *time.Time `json:"creationDate,omitempty"`
}

// HistoryEntry is a snapshot of an entry taken before it was modified.
type HistoryEntry struct {
	ID      int64 `json:"id"`
	EntryID int64 `json:"entryId"`

	// Entry is the full entry as it was before the change. Its password is
	// protected exactly like a live entry's password.
	Entry Entry `json:"entry"`
}
