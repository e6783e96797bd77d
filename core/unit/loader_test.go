package unit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFetcher serves objects from memory and counts fetches per locator.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	objects map[string][]byte
	errs    map[string]error

	// gate, when set, blocks every fetch until it is closed.
	gate    chan struct{}
	started chan string
}

func newFakeFetcher(objects map[string][]byte) *fakeFetcher {
	return &fakeFetcher{
		calls:   make(map[string]int),
		objects: objects,
		errs:    make(map[string]error),
		started: make(chan string, 16),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	f.mu.Lock()
	f.calls[locator]++
	gate := f.gate
	f.mu.Unlock()

	f.started <- locator
	if gate != nil {
		<-gate
	}

	if err, ok := f.errs[locator]; ok {
		return nil, err
	}
	code, ok := f.objects[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	}
	return code, nil
}

func (f *fakeFetcher) count(locator string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[locator]
}

// fakeExecutor records executed units and fails on demand.
type fakeExecutor struct {
	mu       sync.Mutex
	executed []string
	fail     map[string]error
	panics   map[string]bool
}

func (e *fakeExecutor) Execute(ctx context.Context, name, locator string, code []byte) error {
	if e.panics[name] {
		panic("boom")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err, ok := e.fail[name]; ok {
		return err
	}
	e.executed = append(e.executed, name)
	return nil
}

var bundleResolver = ResolverFunc(func(name string) string {
	return name + ".bundle.lua"
})

func newTestLoader(f *fakeFetcher, e *fakeExecutor) *Loader {
	return NewLoader(NewRegistry(), bundleResolver, f, e, zap.NewNop())
}

func TestLoader_ConcurrentLoadsShareOneFetch(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{"app1.bundle.lua": []byte("x = 1")})
	fetcher.gate = make(chan struct{})
	executor := &fakeExecutor{}
	l := newTestLoader(fetcher, executor)

	const callers = 3
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		i := i
		go func() {
			defer wg.Done()
			errs[i] = l.Load(context.Background(), "app1")
		}()
	}

	<-fetcher.started
	assert.Equal(t, Loading, l.State("app1"))
	close(fetcher.gate)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, fetcher.count("app1.bundle.lua"))
	assert.Equal(t, []string{"app1"}, executor.executed)
	assert.Equal(t, Loaded, l.State("app1"))
}

func TestLoader_ConcurrentFailuresShareOutcome(t *testing.T) {
	fetcher := newFakeFetcher(nil)
	fetcher.gate = make(chan struct{})
	l := newTestLoader(fetcher, &fakeExecutor{})

	const callers = 5
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		i := i
		go func() {
			defer wg.Done()
			errs[i] = l.Load(context.Background(), "missing")
		}()
	}

	<-fetcher.started
	close(fetcher.gate)
	wg.Wait()

	assert.Equal(t, 1, fetcher.count("missing.bundle.lua"))
	for _, err := range errs {
		var failed *LoadFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, "missing", failed.Name)
		assert.Equal(t, KindNotFound, failed.Kind())
	}
}

func TestLoader_LoadedIsIdempotent(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{"app1.bundle.lua": []byte("x = 1")})
	executor := &fakeExecutor{}
	l := newTestLoader(fetcher, executor)

	require.NoError(t, l.Load(context.Background(), "app1"))
	require.NoError(t, l.Load(context.Background(), "app1"))
	require.NoError(t, l.Load(context.Background(), "app1"))

	assert.Equal(t, 1, fetcher.count("app1.bundle.lua"))
	assert.Len(t, executor.executed, 1)

	u := l.Unit("app1")
	assert.Equal(t, Loaded, u.State)
	assert.Equal(t, 1, u.Fetches)
	assert.Equal(t, "app1.bundle.lua", u.Locator)
	assert.Nil(t, u.Err)
	assert.False(t, u.SettledAt.IsZero())
}

func TestLoader_FailedIsTerminal(t *testing.T) {
	fetcher := newFakeFetcher(nil)
	l := newTestLoader(fetcher, &fakeExecutor{})

	first := l.Load(context.Background(), "missing")
	var failed *LoadFailedError
	require.ErrorAs(t, first, &failed)
	assert.Equal(t, "missing", failed.Name)
	assert.Equal(t, KindNotFound, failed.Kind())
	assert.ErrorIs(t, first, ErrNotFound)

	second := l.Load(context.Background(), "missing")
	assert.Same(t, failed, second)
	assert.Equal(t, 1, fetcher.count("missing.bundle.lua"))
	assert.Equal(t, Failed, l.State("missing"))
}

func TestLoader_DistinctNamesAreIndependent(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{
		"app1.bundle.lua": []byte("x = 1"),
		"app2.bundle.lua": []byte("y = 2"),
	})
	executor := &fakeExecutor{fail: map[string]error{"app2": errors.New("syntax error")}}
	l := newTestLoader(fetcher, executor)

	assert.NoError(t, l.Load(context.Background(), "app1"))
	err := l.Load(context.Background(), "app2")
	assert.Equal(t, KindExecution, KindOf(err))

	assert.Equal(t, 1, fetcher.count("app1.bundle.lua"))
	assert.Equal(t, 1, fetcher.count("app2.bundle.lua"))
	assert.Equal(t, Loaded, l.State("app1"))
	assert.Equal(t, Failed, l.State("app2"))
}

func TestLoader_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		fetchErr error
		execErr  error
		panics   bool
		want     Kind
	}{
		{name: "Not Found", fetchErr: fmt.Errorf("%w: gone", ErrNotFound), want: KindNotFound},
		{name: "Transport", fetchErr: fmt.Errorf("%w: connection reset", ErrTransport), want: KindTransport},
		{name: "Unclassified Fetch Error", fetchErr: errors.New("dial tcp: refused"), want: KindTransport},
		{name: "Execution Error", execErr: errors.New("attempt to call a nil value"), want: KindExecution},
		{name: "Executor Panic", panics: true, want: KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFakeFetcher(map[string][]byte{"unit.bundle.lua": []byte("x = 1")})
			if tt.fetchErr != nil {
				fetcher.errs["unit.bundle.lua"] = tt.fetchErr
			}
			executor := &fakeExecutor{fail: map[string]error{}, panics: map[string]bool{"unit": tt.panics}}
			if tt.execErr != nil {
				executor.fail["unit"] = tt.execErr
			}
			l := newTestLoader(fetcher, executor)

			err := l.Load(context.Background(), "unit")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Contains(t, err.Error(), `unit "unit" failed to load`)

			u := l.Unit("unit")
			assert.Equal(t, Failed, u.State)
			require.NotNil(t, u.Err)
			assert.Equal(t, tt.want, u.Err.Kind())
		})
	}
}

func TestLoader_CallerCancelDoesNotAbortFetch(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{"app1.bundle.lua": []byte("x = 1")})
	fetcher.gate = make(chan struct{})
	l := newTestLoader(fetcher, &fakeExecutor{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Load(ctx, "app1")
	}()

	<-fetcher.started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, Loading, l.State("app1"))

	close(fetcher.gate)
	assert.NoError(t, l.Load(context.Background(), "app1"))
	assert.Equal(t, 1, fetcher.count("app1.bundle.lua"))
}

func TestLoader_HungFetchStaysLoading(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{"slow.bundle.lua": []byte("x = 1")})
	fetcher.gate = make(chan struct{})
	defer close(fetcher.gate)
	l := newTestLoader(fetcher, &fakeExecutor{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Load(ctx, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Loading, l.State("slow"))
}

func TestLoader_EmptyName(t *testing.T) {
	fetcher := newFakeFetcher(nil)
	l := newTestLoader(fetcher, &fakeExecutor{})

	assert.ErrorIs(t, l.Load(context.Background(), ""), ErrEmptyName)
	assert.Equal(t, 0, l.Registry().Len())
}

func TestLoader_LoadAll(t *testing.T) {
	fetcher := newFakeFetcher(map[string][]byte{
		"app1.bundle.lua": []byte("x = 1"),
		"app2.bundle.lua": []byte("y = 2"),
	})
	l := newTestLoader(fetcher, &fakeExecutor{})

	err := l.LoadAll(context.Background(), "app1", "app2", "app1", "missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	assert.Equal(t, 1, fetcher.count("app1.bundle.lua"))
	assert.Equal(t, 1, fetcher.count("app2.bundle.lua"))
	assert.Equal(t, 1, fetcher.count("missing.bundle.lua"))

	units := l.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "app1", units[0].Name)
	assert.Equal(t, "app2", units[1].Name)
	assert.Equal(t, "missing", units[2].Name)
	assert.Equal(t, Failed, units[2].State)

	assert.NoError(t, l.LoadAll(context.Background(), "app1", "app2"))
}

func TestLoader_UnitNotRequested(t *testing.T) {
	l := newTestLoader(newFakeFetcher(nil), &fakeExecutor{})

	u := l.Unit("app3")
	assert.Equal(t, NotRequested, u.State)
	assert.Equal(t, "app3.bundle.lua", u.Locator)
	assert.Equal(t, 0, u.Fetches)
	assert.Empty(t, l.Units())
}
