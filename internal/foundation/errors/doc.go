// Package errors provides the classified error primitives used across rhaidoc.
//
// Every fatal condition of a site build is reported as a ClassifiedError so the
// CLI can print the offending path and cause and choose a stable exit code.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, parse, filesystem, render, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryParse, "script failed to parse").
//		WithContext("path", path).
//		Build()
package errors
