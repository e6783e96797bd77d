package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "units", enabled: true}
	disabled := &stubFeature{name: "legacy", enabled: false}

	m := NewManager()
	m.Register(enabled)
	m.Register(disabled)

	assert.NoError(t, m.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Equal(t, []string{"units"}, m.Loaded())
}

func TestManager_LoadAllError(t *testing.T) {
	failing := &stubFeature{name: "broken", enabled: true, err: errors.New("route clash")}
	after := &stubFeature{name: "after", enabled: true}

	m := NewManager()
	m.Register(failing)
	m.Register(after)

	err := m.LoadAll(fiber.New())
	assert.EqualError(t, err, "failed to load feature broken: route clash")
	assert.False(t, after.loaded)
	assert.Empty(t, m.Loaded())
}
