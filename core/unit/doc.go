// Package unit implements on-demand loading of named code units with
// single-flight semantics.
//
// A unit is an independently built piece of executable code identified by its
// name. The Loader resolves the name to a resource locator, fetches the
// resource once, executes it once, and records the outcome in a Registry.
//
// # States
//
//	NotRequested --Load--> Loading --success--> Loaded (terminal)
//	                                \--failure--> Failed (terminal, no retry)
//
// # Guarantees
//
//   - At most one fetch is ever issued per unit name for the lifetime of a Registry.
//   - Concurrent callers for the same name share the in-flight operation and
//     observe the same outcome.
//   - A loaded unit is never reloaded; a failed unit is never retried.
//   - Failures surface as *LoadFailedError, whose Kind reports whether the
//     resource was missing, the transport failed, or the code failed to execute.
//
// A caller may stop awaiting by cancelling its context, but the fetch itself
// is never cancelled and no timeout is applied at this layer. A fetch that
// never settles leaves the unit in Loading.
//
// # Usage
//
//	reg := unit.NewRegistry()
//	l := unit.NewLoader(reg, resolver, fetcher, executor, logger)
//	if err := l.Load(ctx, "app1"); err != nil {
//	    var failed *unit.LoadFailedError
//	    if errors.As(err, &failed) && failed.Kind() == unit.KindNotFound {
//	        // ...
//	    }
//	}
package unit
