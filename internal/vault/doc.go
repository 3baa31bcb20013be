// Package vault converts between the row model of an open vault and the
// versioned document that is sealed into the vault file.
//
// Rows handed in by the caller's storage engine are normalized first: any
// field that is not part of the canonical entity shape is dropped so engine
// metadata never ends up inside the encrypted file. Documents carrying a
// schema version this build does not understand are rejected outright.
package vault
