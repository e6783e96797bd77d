package units

import (
	"unit-loader/core/manifest"
	"unit-loader/core/unit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Units feature.
func NewFeature(l *unit.Loader, m *manifest.Manifest, logger *zap.Logger) *Feature {
	svc := NewService(l, m, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "units"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service for startup hooks.
func (f *Feature) Service() *Service {
	return f.service
}
