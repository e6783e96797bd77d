package unit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("unit-loader/core/unit")

// Resolver maps a unit name to its resource locator.
type Resolver interface {
	Resolve(name string) string
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) string

func (f ResolverFunc) Resolve(name string) string {
	return f(name)
}

// Fetcher retrieves the bytes behind a resource locator.
// Implementations should wrap ErrNotFound or ErrTransport so failures can be
// classified. Unclassified errors are treated as transport errors.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Executor evaluates fetched code. Any returned error is an execution error.
type Executor interface {
	Execute(ctx context.Context, name, locator string, code []byte) error
}

// Loader loads units exactly once per name.
type Loader struct {
	registry *Registry
	resolver Resolver
	fetcher  Fetcher
	executor Executor
	logger   *zap.Logger
}

// NewLoader creates a loader recording its outcomes in registry.
func NewLoader(registry *Registry, resolver Resolver, fetcher Fetcher, executor Executor, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		registry: registry,
		resolver: resolver,
		fetcher:  fetcher,
		executor: executor,
		logger:   logger,
	}
}

// Registry returns the registry the loader records into.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load ensures the unit called name has been fetched and executed.
//
// It returns nil once the unit is loaded and a *LoadFailedError if the unit
// failed, now or on an earlier attempt. If ctx ends first, Load returns
// ctx.Err() and the fetch keeps running to completion in the background.
func (l *Loader) Load(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	// Fast path: terminal outcomes are answered from the registry.
	if done, err := l.registry.settled(name); done {
		return err
	}

	// Slow path: join or start the single in-flight operation for name.
	ch := l.registry.sf.DoChan(name, func() (interface{}, error) {
		// A flight may have settled between the fast path and here.
		if done, err := l.registry.settled(name); done {
			return nil, err
		}

		locator := l.resolver.Resolve(name)
		l.registry.begin(name, locator)
		l.logger.Debug("Unit loading", zap.String("unit", name), zap.String("locator", locator))

		failure := l.fetchAndExecute(context.WithoutCancel(ctx), name, locator)
		l.registry.settle(name, failure)

		if failure != nil {
			l.logger.Warn("Unit failed to load",
				zap.String("unit", name),
				zap.String("kind", failure.Kind().String()),
				zap.Error(failure.Cause))
			return nil, failure
		}
		l.logger.Info("Unit loaded", zap.String("unit", name), zap.String("locator", locator))
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadAll loads names concurrently and returns the joined failures in
// argument order. Duplicate names share one fetch.
func (l *Loader) LoadAll(ctx context.Context, names ...string) error {
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	wg.Add(len(names))
	for i, name := range names {
		i, name := i, name
		go func() {
			defer wg.Done()
			errs[i] = l.Load(ctx, name)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Unit returns the registry view of name. Units that were never requested
// are reported as NotRequested with their resolved locator.
func (l *Loader) Unit(name string) Unit {
	if u, ok := l.registry.Get(name); ok {
		return u
	}
	return Unit{
		Name:    name,
		Locator: l.resolver.Resolve(name),
		State:   NotRequested,
	}
}

// Units returns every requested unit sorted by name.
func (l *Loader) Units() []Unit {
	return l.registry.List()
}

// State returns the current state of name.
func (l *Loader) State(name string) State {
	return l.registry.State(name)
}

func (l *Loader) fetchAndExecute(ctx context.Context, name, locator string) (failure *LoadFailedError) {
	ctx, span := tracer.Start(ctx, "unit.load", trace.WithAttributes(
		attribute.String("unit.name", name),
		attribute.String("unit.locator", locator),
	))
	defer func() {
		if failure != nil {
			span.RecordError(failure)
			span.SetStatus(codes.Error, failure.Kind().String())
		}
		span.End()
	}()

	code, err := l.fetch(ctx, locator)
	if err != nil {
		return &LoadFailedError{Name: name, Cause: err}
	}

	if err := l.execute(ctx, name, locator, code); err != nil {
		return &LoadFailedError{Name: name, Cause: err}
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "unit.fetch")
	defer span.End()

	code, err := l.fetcher.Fetch(ctx, locator)
	if err == nil {
		span.SetAttributes(attribute.Int("unit.bytes", len(code)))
		return code, nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransport) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrTransport, err)
}

func (l *Loader) execute(ctx context.Context, name, locator string, code []byte) (err error) {
	ctx, span := tracer.Start(ctx, "unit.execute")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrExecution, r)
		}
	}()

	if err := l.executor.Execute(ctx, name, locator, code); err != nil {
		return fmt.Errorf("%w: %w", ErrExecution, err)
	}
	return nil
}
