// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// # Security Features
//
// The SecureHandler sanitizes log output before it reaches the wrapped handler:
//   - Analysed content under the keys input, text, snippet, body, content
//     and line is replaced by a mask that keeps only its length
//   - Credential-like keys (password, token, cookie, session, otp, ...)
//   - Values that look like secrets (JWTs, bearer tokens, card numbers)
//   - Query strings of http(s) URLs
//
// Even in verbose mode the scanned text never reaches the log, since users
// paste private messages into the scanner.
//
// # Usage
//
//	logger := log.New(os.Stderr, verbose, jsonFormat)
//	logger.Debug("analysed input", "input", text, "kind", result.Kind)
//	// input=***REDACTED*** (42 chars) kind=email
//	slog.SetDefault(logger)
package log
