package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"
)

// LuaExecutor runs Lua units in a single shared state.
// The state is not goroutine safe, so executions are serialised.
type LuaExecutor struct {
	mu     sync.Mutex
	state  *lua.State
	logger *zap.Logger
}

// NewLuaExecutor creates a Lua state with the standard libraries and the
// host function log(message).
func NewLuaExecutor(logger *zap.Logger) *LuaExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &LuaExecutor{
		state:  lua.NewState(),
		logger: logger,
	}
	lua.OpenLibraries(e.state)
	e.state.Register("log", e.hostLog)
	return e
}

// Execute loads and runs code. The global UNIT holds the unit name while the
// chunk runs.
func (e *LuaExecutor) Execute(ctx context.Context, name, locator string, code []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Errors leave their message on the stack; restore it either way.
	top := e.state.Top()
	defer e.state.SetTop(top)

	e.state.PushString(name)
	e.state.SetGlobal("UNIT")

	if err := lua.LoadBuffer(e.state, string(code), "@"+locator, ""); err != nil {
		return fmt.Errorf("load lua %s: %w", locator, err)
	}
	if err := e.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run lua %s: %w", locator, err)
	}
	return nil
}

// Global returns the string value of a global, if it is a string or number.
func (e *LuaExecutor) Global(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Global(name)
	defer e.state.Pop(1)
	if e.state.IsNil(-1) {
		return "", false
	}
	return e.state.ToString(-1)
}

func (e *LuaExecutor) hostLog(state *lua.State) int {
	message := lua.CheckString(state, 1)
	unitName := ""
	state.Global("UNIT")
	if s, ok := state.ToString(-1); ok {
		unitName = s
	}
	state.Pop(1)
	e.logger.Info("Unit log", zap.String("unit", unitName), zap.String("message", message))
	return 0
}
