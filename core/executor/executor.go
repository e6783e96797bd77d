package executor

import (
	"context"
	"fmt"
	"path"
	"sort"
)

// Executor evaluates the code of one unit.
type Executor interface {
	Execute(ctx context.Context, name, locator string, code []byte) error
}

// Mux dispatches execution by locator extension.
type Mux struct {
	byExt map[string]Executor
}

// NewMux creates an empty executor mux.
func NewMux() *Mux {
	return &Mux{byExt: make(map[string]Executor)}
}

// Handle registers ex for locators ending in ext (e.g. ".lua").
func (m *Mux) Handle(ext string, ex Executor) {
	m.byExt[ext] = ex
}

// Extensions returns the registered extensions in sorted order.
func (m *Mux) Extensions() []string {
	exts := make([]string, 0, len(m.byExt))
	for ext := range m.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Execute runs code with the executor registered for the locator's extension.
func (m *Mux) Execute(ctx context.Context, name, locator string, code []byte) error {
	ext := path.Ext(locator)
	ex, ok := m.byExt[ext]
	if !ok {
		return fmt.Errorf("no executor registered for %q (locator %s)", ext, locator)
	}
	return ex.Execute(ctx, name, locator, code)
}
