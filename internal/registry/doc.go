// Package registry provides the central piece of the system: the immutable,
// validated registry of training tasks.
//
// The registry is built exactly once, at job startup, from the format-agnostic
// declarations produced by the input front-ends and the variable context the
// declarations reference. The build is a pure, synchronous, all-or-nothing
// transform: it performs no I/O, and on any error no partial registry is
// returned. Configuration errors are fatal by design; there is nothing to
// retry, the user must fix the documents.
//
// Once built, the registry is never mutated. The training loop queries it by
// dataset per batch and by task name for introspection, from arbitrarily many
// goroutines, without synchronization.
package registry
