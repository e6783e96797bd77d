// Package executor evaluates fetched unit code.
//
// Units are executed into long-lived environments so that later units can see
// what earlier ones defined, the same way scripts loaded into a page share its
// global scope:
//
//   - LuaExecutor runs Lua source in one shared Lua state (Shopify/go-lua).
//   - WasmExecutor compiles and instantiates WebAssembly modules in one wazero
//     runtime, naming each instance after its unit.
//
// Mux picks an executor by the locator's file extension.
package executor
