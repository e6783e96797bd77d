package executor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// WasmConfig holds runtime limits for WebAssembly units.
type WasmConfig struct {
	// MemoryLimitPages caps memory per instance in 64KB pages. 0 keeps the default.
	MemoryLimitPages uint32
}

// WasmExecutor compiles and instantiates WebAssembly units in one runtime.
// Start functions run during instantiation.
type WasmExecutor struct {
	runtime wazero.Runtime
	logger  *zap.Logger

	mu      sync.Mutex
	modules map[string]api.Module
}

// NewWasmExecutor creates a wazero runtime for unit modules.
func NewWasmExecutor(ctx context.Context, cfg *WasmConfig, logger *zap.Logger) *WasmExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &WasmExecutor{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		logger:  logger,
		modules: make(map[string]api.Module),
	}
}

// Execute compiles code and instantiates it under the unit name.
func (e *WasmExecutor) Execute(ctx context.Context, name, locator string, code []byte) error {
	compiled, err := e.runtime.CompileModule(ctx, code)
	if err != nil {
		return fmt.Errorf("compile wasm %s: %w", locator, err)
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return fmt.Errorf("instantiate wasm %s: %w", locator, err)
	}

	e.mu.Lock()
	e.modules[name] = mod
	e.mu.Unlock()

	e.logger.Debug("Wasm unit instantiated",
		zap.String("unit", name),
		zap.Int("exports", len(compiled.ExportedFunctions())))
	return nil
}

// Modules returns the names of instantiated units in sorted order.
func (e *WasmExecutor) Modules() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.modules))
	for name := range e.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the runtime and every instantiated unit.
func (e *WasmExecutor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
