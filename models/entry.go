// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntryType defines the semantic kind of a vault entry.
type EntryType string

const (
	// PasswordEntry represents login credentials (username, password, URL).
	PasswordEntry EntryType = "password"

	// CardEntry represents payment card information.
	CardEntry EntryType = "card"
)

// Entry is a single credential stored in the vault.
//
// Only the fields declared here are canonical: anything else a caller's
// storage engine attaches to a row is stripped before the row is sealed
// into the vault file.
type Entry struct {
	// ID is the row identifier assigned by the caller's entry database.
	ID int64 `json:"id"`

	// GroupID references the [Group] the entry belongs to.
	GroupID int64 `json:"groupId"`

	// Type defines how the remaining fields are interpreted.
	Type EntryType `json:"type"`

	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`

	// Password is the secret credential. Outside the worker process it is
	// always sealed under the session's ephemeral key.
	Password string `json:"password,omitempty"`

	URL         string `json:"url,omitempty"`
	Notes       string `json:"notes,omitempty"`
	AutotypeExp string `json:"autotypeExp,omitempty"`
	IconPath    string `json:"iconPath,omitempty"`
	IsStarred   bool   `json:"isStarred"`

	CreationDate         *time.Time `json:"creationDate,omitempty"`
	LastAccessDate       *time.Time `json:"lastAccessDate,omitempty"`
	LastModificationDate *time.Time `json:"lastModificationDate,omitempty"`

	// Card fields, populated when Type is CardEntry.
	CardholderName  string `json:"cardholderName,omitempty"`
	Number          string `json:"number,omitempty"`
	ExpirationMonth int    `json:"expirationMonth,omitempty"`
	ExpirationYear  int    `json:"expirationYear,omitempty"`
	SecurityCode    string `json:"securityCode,omitempty"`
}

// HasPassword reports whether the entry carries a password that can be
// protected, scanned or scored.
func (e Entry) HasPassword() bool {
	return e.Type != CardEntry && e.Password != ""
}
