// Package errors provides the classified error primitives used across featuredoc.
//
// A generation run either completes or aborts on its first fatal error. The
// category attached to an error tells the CLI which exit code to use and tells
// log readers which stage of the pipeline failed.
//
// Key features:
//   - ErrorCategory: pipeline stage or concern (config, render, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.RenderError("failed to create documentation").
//		WithContext("template", name).
//		WithCause(execErr).
//		Build()
package errors
