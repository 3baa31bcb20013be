// Package config provides configuration loading, merging, and validation
// facilities for the vault CLI, its worker process and the development
// range server.
//
// Configuration is assembled from multiple sources. The first source that
// sets a field wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetClientConfig] for the CLI, [GetWorkerConfig] for
// the one-shot worker process (environment only, since the worker is started
// without flags) and [GetRangeMockConfig] for cmd/rangemock.
package config
