// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// OperationKind selects the worker handler for a request.
type OperationKind string

const (
	DecryptDatabase   OperationKind = "decrypt-database"
	EncryptDatabase   OperationKind = "encrypt-database"
	EncryptString     OperationKind = "encrypt-string"
	DecryptString     OperationKind = "decrypt-string"
	BulkDecryptString OperationKind = "bulk-decrypt-string"
	GetLeaks          OperationKind = "get-leaks"
	GetWeakPasswords  OperationKind = "get-weak-passwords"
)

// ErrorKind classifies a failed reply so the caller can map it back to a
// typed error without parsing the description.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindMalformed      ErrorKind = "malformed"
	KindSchemaVersion  ErrorKind = "schema-version"
	KindInvalidRequest ErrorKind = "invalid-request"
	KindNetwork        ErrorKind = "network"
	KindInternal       ErrorKind = "internal"
)

// WorkerRequest is the single message a worker process receives.
// Which fields are set depends on Type.
type WorkerRequest struct {
	// ID correlates the request with its reply in logs.
	ID   string        `json:"id"`
	Type OperationKind `json:"type"`

	// MemoryKey is the session's ephemeral key (base64 in JSON).
	MemoryKey []byte `json:"memoryKey,omitempty"`

	// Data is the base64 vault file payload (decrypt-database).
	Data string `json:"data,omitempty"`

	// Database is the caller's table export (encrypt-database, get-leaks,
	// get-weak-passwords). Rows may still carry storage-engine fields.
	Database json.RawMessage `json:"database,omitempty"`

	// Password is the vault password (decrypt-database, encrypt-database).
	Password Secret `json:"password,omitempty"`

	// SchemaVersion is the version to write (encrypt-database).
	SchemaVersion int `json:"schemaVersion,omitempty"`

	// Plain is the value to seal (encrypt-string).
	Plain Secret `json:"plain,omitempty"`

	// Encrypted is the value to open (decrypt-string).
	Encrypted string `json:"encrypted,omitempty"`

	// Values are the values to open (bulk-decrypt-string).
	Values []string `json:"values,omitempty"`
}

// Wipe zeroes every secret the request carries.
func (r *WorkerRequest) Wipe() {
	for i := range r.MemoryKey {
		r.MemoryKey[i] = 0
	}
	r.Password.Wipe()
	r.Plain.Wipe()
}

// WorkerReply is the single message a worker process sends back.
// Exactly one of the result fields or Error is set.
type WorkerReply struct {
	ID        string `json:"id,omitempty"`
	Decrypted string `json:"decrypted,omitempty"`
	Encrypted string `json:"encrypted,omitempty"`
	Data      string `json:"data,omitempty"`

	Error string    `json:"error,omitempty"`
	Kind  ErrorKind `json:"kind,omitempty"`
}

// Failed reports whether the reply carries an error.
func (r WorkerReply) Failed() bool {
	return r.Error != ""
}
