package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid manifest")

// Manifest describes the units produced by the external build.
type Manifest struct {
	Output  Output  `hcl:"output,block"`
	Entries []Entry `hcl:"entry,block"`
	Common  *Common `hcl:"common,block"`
}

// Output mirrors the build's output settings.
type Output struct {
	// Filename is the template for unit resources, e.g. "[name].bundle.lua".
	Filename string `hcl:"filename"`
	// Path is the directory or prefix the build emits into.
	Path string `hcl:"path,optional"`
}

// Entry is one independently loadable unit.
type Entry struct {
	Name   string `hcl:"name,label"`
	Source string `hcl:"source,optional"`
}

// Common is the shared unit extracted from code used by several entries.
// It must be loaded before any unit that depends on it.
type Common struct {
	Name string `hcl:"name,label"`
	// MinChunks is the number of entries that must share code for it to be extracted.
	MinChunks int `hcl:"min_chunks,optional"`
}

// Parse decodes and validates a manifest from HCL source.
func Parse(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var m Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &m); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &m, nil
}

// LoadFile reads and parses the manifest at path.
func LoadFile(fsys afero.Fs, path string) (*Manifest, error) {
	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(src, path)
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if !strings.Contains(m.Output.Filename, "[name]") {
		return fmt.Errorf("%w: output filename %q must contain [name]", ErrInvalid, m.Output.Filename)
	}
	if len(m.Entries) == 0 {
		return fmt.Errorf("%w: at least one entry is required", ErrInvalid)
	}

	seen := make(map[string]struct{}, len(m.Entries))
	for _, e := range m.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: entry name is empty", ErrInvalid)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%w: duplicate entry %q", ErrInvalid, e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	if m.Common != nil {
		if _, clash := seen[m.Common.Name]; clash {
			return fmt.Errorf("%w: common unit %q collides with an entry", ErrInvalid, m.Common.Name)
		}
		if m.Common.MinChunks != 0 && m.Common.MinChunks < 2 {
			return fmt.Errorf("%w: common min_chunks must be at least 2, got %d", ErrInvalid, m.Common.MinChunks)
		}
	}
	return nil
}

// Names returns the entry names in declaration order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Has reports whether name is an entry or the common unit.
func (m *Manifest) Has(name string) bool {
	if m.Common != nil && m.Common.Name == name {
		return true
	}
	for _, e := range m.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Shared returns the common unit name, if the build extracts one.
func (m *Manifest) Shared() (string, bool) {
	if m.Common == nil {
		return "", false
	}
	return m.Common.Name, true
}
