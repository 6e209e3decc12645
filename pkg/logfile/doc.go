// Package logfile decodes JSON-lines log output into captured entries.
//
// It understands the JSON output of log/slog, zerolog and logrus out of the
// box: the level, message, logger, marker and error fields are recognized by
// name (see Keys), timestamps and caller information are dropped, and every
// other field becomes a property. Nested objects are flattened with dots:
//
//	{"level":"INFO","msg":"saved","req":{"id":"7"}}  ->  INFO | saved | {req.id=7}
//
// Errors are decoded into *DecodedError values, which carry only the text.
package logfile
