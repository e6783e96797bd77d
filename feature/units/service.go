package units

import (
	"context"
	"fmt"
	"sort"

	"unit-loader/core/manifest"
	"unit-loader/core/unit"

	"go.uber.org/zap"
)

// Service loads units on behalf of HTTP and CLI callers.
type Service struct {
	loader   *unit.Loader
	manifest *manifest.Manifest
	logger   *zap.Logger
}

// NewService creates a units service. m may be nil when no manifest is configured.
func NewService(l *unit.Loader, m *manifest.Manifest, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:   l,
		manifest: m,
		logger:   logger,
	}
}

// Load loads the shared unit declared by the manifest, if any, and then name.
// A failed shared unit fails every dependent load without fetching it.
func (s *Service) Load(ctx context.Context, name string) error {
	if shared, ok := s.shared(); ok && shared != name && name != "" {
		if err := s.loader.Load(ctx, shared); err != nil {
			return fmt.Errorf("shared unit %s required by %s: %w", shared, name, err)
		}
	}
	return s.loader.Load(ctx, name)
}

// LoadAll loads names concurrently through Load and joins the failures.
func (s *Service) LoadAll(ctx context.Context, names ...string) error {
	if shared, ok := s.shared(); ok && len(names) > 0 {
		if err := s.loader.Load(ctx, shared); err != nil {
			return fmt.Errorf("shared unit %s: %w", shared, err)
		}
	}
	return s.loader.LoadAll(ctx, names...)
}

// Preload loads the shared unit ahead of any request.
// It is a no-op without a manifest or without a common unit.
func (s *Service) Preload(ctx context.Context) error {
	shared, ok := s.shared()
	if !ok {
		return nil
	}
	s.logger.Info("Preloading shared unit", zap.String("unit", shared))
	return s.loader.Load(ctx, shared)
}

// Unit returns the current view of name.
func (s *Service) Unit(name string) unit.Unit {
	return s.loader.Unit(name)
}

// Units returns every unit known from the manifest or from past requests,
// sorted by name.
func (s *Service) Units() []unit.Unit {
	seen := make(map[string]struct{})
	var units []unit.Unit
	for _, u := range s.loader.Units() {
		seen[u.Name] = struct{}{}
		units = append(units, u)
	}

	if s.manifest != nil {
		names := s.manifest.Names()
		if shared, ok := s.manifest.Shared(); ok {
			names = append(names, shared)
		}
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			units = append(units, s.loader.Unit(name))
		}
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].Name < units[j].Name
	})
	return units
}

// Known reports whether name is declared by the manifest.
// Without a manifest every name is considered known.
func (s *Service) Known(name string) bool {
	if s.manifest == nil {
		return true
	}
	return s.manifest.Has(name)
}

func (s *Service) shared() (string, bool) {
	if s.manifest == nil {
		return "", false
	}
	return s.manifest.Shared()
}
