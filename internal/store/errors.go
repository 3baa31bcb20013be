package store

import "errors"

// Sentinel errors returned by storages and repositories. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrVaultFileNotFound is returned when a vault or recovery file does
	// not exist.
	ErrVaultFileNotFound = errors.New("vault file not found")

	// ErrEmptyPath is returned when an operation is given an empty path.
	ErrEmptyPath = errors.New("empty path")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
