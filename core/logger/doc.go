// Package logger builds the zap logger shared by the server, the CLI and the
// unit loader.
//
// Level "debug" selects zap's development config (ISO8601 timestamps, caller
// info). Any other level uses the production config at that level. Format
// "console" switches to colored console encoding, anything else is JSON.
//
// Request-scoped lines carry the ray id assigned by the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Unit load request failed", zap.String("unit", name), zap.Error(err))
//
// The loader itself logs with a "unit" field on every line, so one unit's
// lifecycle can be followed across concurrent requests.
package logger
