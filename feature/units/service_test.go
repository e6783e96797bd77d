package units

import (
	"context"
	"testing"

	"unit-loader/core/executor"
	"unit-loader/core/manifest"
	"unit-loader/core/resource"
	"unit-loader/core/unit"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testManifest = `
output {
  filename = "[name].bundle.lua"
  path     = "dist"
}
entry "app1" {}
entry "app2" {}
entry "app3" {}
common "common" { min_chunks = 2 }
`

var testUnits = map[string]string{
	"dist/common.bundle.lua": `shared = { value = 7 }`,
	"dist/app1.bundle.lua":   `app1_value = shared.value * 2`,
	"dist/app2.bundle.lua":   `app2_value = shared.value * 3`,
	"dist/broken.bundle.lua": `this is not lua`,
}

func newTestLoader(t *testing.T, files map[string]string) (*unit.Loader, *executor.LuaExecutor) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, src := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(src), 0644))
	}

	luaEx := executor.NewLuaExecutor(zap.NewNop())
	mux := executor.NewMux()
	mux.Handle(".lua", luaEx)

	l := unit.NewLoader(
		unit.NewRegistry(),
		resource.NewResolver("dist", "[name].bundle.lua"),
		resource.NewFSFetcher(fsys),
		mux,
		zap.NewNop(),
	)
	return l, luaEx
}

func mustManifest(t *testing.T, src string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(src), "units.hcl")
	require.NoError(t, err)
	return m
}

func TestService_LoadsSharedUnitFirst(t *testing.T) {
	l, luaEx := newTestLoader(t, testUnits)
	svc := NewService(l, mustManifest(t, testManifest), zap.NewNop())

	require.NoError(t, svc.Load(context.Background(), "app1"))

	got, ok := luaEx.Global("app1_value")
	require.True(t, ok)
	assert.Equal(t, "14", got)
	assert.Equal(t, unit.Loaded, svc.Unit("common").State)
	assert.Equal(t, 1, svc.Unit("common").Fetches)

	require.NoError(t, svc.Load(context.Background(), "app2"))
	assert.Equal(t, 1, svc.Unit("common").Fetches)
}

func TestService_SharedFailureBlocksDependents(t *testing.T) {
	files := map[string]string{
		"dist/app1.bundle.lua": `app1_value = 1`,
	}
	l, _ := newTestLoader(t, files)
	svc := NewService(l, mustManifest(t, testManifest), zap.NewNop())

	err := svc.Load(context.Background(), "app1")
	require.Error(t, err)
	assert.Equal(t, unit.KindNotFound, unit.KindOf(err))
	assert.Contains(t, err.Error(), "shared unit common required by app1")

	assert.Equal(t, unit.Failed, svc.Unit("common").State)
	assert.Equal(t, unit.NotRequested, svc.Unit("app1").State)
}

func TestService_WithoutManifest(t *testing.T) {
	l, _ := newTestLoader(t, testUnits)
	svc := NewService(l, nil, nil)

	require.NoError(t, svc.Preload(context.Background()))
	assert.Empty(t, svc.Units())

	// Without the shared unit app1 indexes a nil global.
	err := svc.Load(context.Background(), "app1")
	assert.Equal(t, unit.KindExecution, unit.KindOf(err))
	assert.True(t, svc.Known("anything"))
}

func TestService_Preload(t *testing.T) {
	l, luaEx := newTestLoader(t, testUnits)
	svc := NewService(l, mustManifest(t, testManifest), zap.NewNop())

	require.NoError(t, svc.Preload(context.Background()))
	assert.Equal(t, unit.Loaded, svc.Unit("common").State)

	_, ok := luaEx.Global("app1_value")
	assert.False(t, ok)
	assert.Equal(t, unit.NotRequested, svc.Unit("app1").State)
}

func TestService_LoadAll(t *testing.T) {
	l, _ := newTestLoader(t, testUnits)
	svc := NewService(l, mustManifest(t, testManifest), zap.NewNop())

	require.NoError(t, svc.LoadAll(context.Background(), "app1", "app2", "app1"))
	assert.Equal(t, unit.Loaded, svc.Unit("app1").State)
	assert.Equal(t, unit.Loaded, svc.Unit("app2").State)
	assert.Equal(t, 1, svc.Unit("app1").Fetches)
}

func TestService_Units(t *testing.T) {
	l, _ := newTestLoader(t, testUnits)
	svc := NewService(l, mustManifest(t, testManifest), zap.NewNop())

	require.NoError(t, svc.Load(context.Background(), "app1"))
	_ = svc.Load(context.Background(), "undeclared")

	list := svc.Units()
	names := make([]string, 0, len(list))
	for _, u := range list {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"app1", "app2", "app3", "common", "undeclared"}, names)

	states := make(map[string]unit.State)
	for _, u := range list {
		states[u.Name] = u.State
	}
	assert.Equal(t, unit.Loaded, states["app1"])
	assert.Equal(t, unit.NotRequested, states["app2"])
	assert.Equal(t, unit.Loaded, states["common"])
	assert.Equal(t, unit.Failed, states["undeclared"])

	assert.True(t, svc.Known("app3"))
	assert.False(t, svc.Known("undeclared"))
}
