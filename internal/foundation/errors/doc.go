// Package errors provides the classified error primitives used across vaultsite.
//
// A conversion run distinguishes a small number of failure classes:
//   - CategoryConfig: a required option is missing or malformed (fatal, checked before traversal)
//   - CategoryFileSystem: reading the export tree or writing the content tree failed (fatal)
//   - CategoryBuild: an artifact could not be produced (graph, settings, metrics)
//   - CategoryLink / CategoryDocument: recoverable conditions, logged as warnings
//
// Errors are built with a fluent builder:
//
//	err := errors.FileSystemError("write page").
//		WithContext("path", dest).
//		WithCause(ioErr).
//		Build()
package errors
