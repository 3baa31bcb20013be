// Package worker implements the one-shot crypto worker protocol.
//
// Every sensitive operation runs in a fresh worker: the caller writes one
// JSON [models.WorkerRequest] to the worker's stdin, the worker performs the
// operation, writes one JSON [models.WorkerReply] to stdout and exits. The
// vault password, the derived key and any plaintext therefore live only for
// the duration of a single operation, and a crash or hang is contained in a
// process the caller kills and reaps.
//
// The caller side is a [Runner]: [ProcessRunner] re-executes a binary per
// request, [InProcessRunner] runs the same protocol in a goroutine for
// debugging and tests. The worker side is [Serve] around a [Router], started
// from [Main].
package worker
