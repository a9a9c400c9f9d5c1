package download

// Package download implements the platform download service contract: callers
// enqueue HTTP transfers and query status rows by id. Transfers run in the
// background with bounded concurrency, stream through a progress reader into
// the status store and are retried on transient failures.
