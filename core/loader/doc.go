// Package loader provides the feature loading system for the HTTP server.
//
// It is unrelated to unit loading (see core/unit); it wires HTTP features.
//
// It allows the application to register and initialize features (modules) dynamically.
// Each feature implements the Feature interface, which defines its lifecycle hooks
// and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// This keeps the HTTP surface modular; the 'units' feature is the first, and
// further modules can be developed and tested in isolation.
package loader
