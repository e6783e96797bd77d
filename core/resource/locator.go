package resource

import (
	"path"
	"strings"
)

// NamePlaceholder is replaced by the unit name in a Template.
const NamePlaceholder = "[name]"

// Template is an output filename template such as "[name].bundle.lua".
type Template string

// Expand substitutes name into the template.
func (t Template) Expand(name string) string {
	return strings.ReplaceAll(string(t), NamePlaceholder, name)
}

// Valid reports whether the template references the unit name.
func (t Template) Valid() bool {
	return strings.Contains(string(t), NamePlaceholder)
}

// Resolver derives resource locators from unit names.
// It implements unit.Resolver.
type Resolver struct {
	BasePath string
	Template Template
}

// NewResolver creates a resolver for units stored under basePath.
func NewResolver(basePath string, tmpl Template) *Resolver {
	return &Resolver{BasePath: basePath, Template: tmpl}
}

// Resolve returns the locator for name, e.g. "dist/app1.bundle.lua".
func (r *Resolver) Resolve(name string) string {
	file := r.Template.Expand(name)
	if r.BasePath == "" {
		return file
	}
	return path.Join(r.BasePath, file)
}
