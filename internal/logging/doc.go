// Package logging provides structured logging utilities for the workspace server.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Handler construction (JSON or text) at a configured level, on stderr
//   - PII sanitization (email anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "search_workspace_emails")
//	logger.Info("tool completed",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("token refreshed",
//	    logging.UserHash(email))
//
// # Security Considerations
//
//   - Account emails are hashed to prevent PII leakage while allowing correlation
//   - Tokens are never logged directly
package logging
