package cmd

import (
	"context"
	"fmt"

	"unit-loader/core/config"
	"unit-loader/core/executor"
	"unit-loader/core/manifest"
	"unit-loader/core/resource"
	"unit-loader/core/storage"
	"unit-loader/core/unit"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// components holds everything a command needs to load units.
type components struct {
	loader   *unit.Loader
	manifest *manifest.Manifest
	store    storage.Client
	wasm     *executor.WasmExecutor
}

// Close releases the wasm runtime.
func (c *components) Close(ctx context.Context) error {
	return c.wasm.Close(ctx)
}

// buildComponents wires the loader described by cfg.
func buildComponents(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*components, error) {
	loaderCfg := cfg.Loader

	var m *manifest.Manifest
	if loaderCfg.Manifest != "" {
		var err error
		m, err = manifest.LoadFile(afero.NewOsFs(), loaderCfg.Manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		// The manifest describes the build output, so it wins over config.
		loaderCfg.Filename = m.Output.Filename
		if m.Output.Path != "" {
			loaderCfg.BasePath = m.Output.Path
		}
	}

	var store storage.Client
	if loaderCfg.Source == resource.SourceStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		store = client
	}

	fetcher, err := resource.NewFetcher(loaderCfg, store, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	wasmEx := executor.NewWasmExecutor(ctx, nil, logg)
	mux := executor.NewMux()
	mux.Handle(".lua", executor.NewLuaExecutor(logg))
	mux.Handle(".wasm", wasmEx)

	l := unit.NewLoader(
		unit.NewRegistry(),
		resource.NewResolver(loaderCfg.BasePath, resource.Template(loaderCfg.Filename)),
		fetcher,
		mux,
		logg,
	)

	logg.Debug("Unit loader ready",
		zap.String("source", loaderCfg.Source),
		zap.String("base_path", loaderCfg.BasePath),
		zap.String("filename", loaderCfg.Filename),
		zap.Strings("executors", mux.Extensions()),
	)

	return &components{
		loader:   l,
		manifest: m,
		store:    store,
		wasm:     wasmEx,
	}, nil
}
