// Package server runs the HTTP server of the breach range mock.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown.
package server
