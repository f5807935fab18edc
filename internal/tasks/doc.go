// Package tasks implements long-running catalog operations: syncing the
// backend catalog into the local cache, dumping backend state for debugging,
// and bulk per-genre exports.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks
