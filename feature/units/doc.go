// Package units exposes unit loading over HTTP.
//
// The Service sits on top of core/unit and adds the one piece of ordering the
// build requires: when the manifest declares a common unit, it is loaded before
// any unit that depends on it. The loader itself stays unaware of this.
//
// # HTTP Endpoints
//
//   - GET /units : Lists declared and requested units with their state.
//   - GET /units/:name : Returns the state of one unit.
//   - POST /units/:name/load : Loads a unit and waits for the outcome.
//
// Load failures map to status codes by kind: 404 not found, 502 transport
// error, 422 execution error.
package units
