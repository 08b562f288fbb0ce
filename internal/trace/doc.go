// Package trace records what the parser and the driver are doing.
//
// Events are spans (begin/end pairs) or points, tagged with a scope:
//
//   - ScopeDriver: CLI commands and directory walks
//   - ScopeFile: one parse or tokenize of one file
//   - ScopeStmt: one statement
//   - ScopeExpr: one expression entry (very chatty)
//
// The level decides which scopes are emitted: phase covers driver and file,
// detail adds statements and debug adds expressions.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "parse", 0)
//	defer span.End("")
package trace
