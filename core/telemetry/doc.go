// Package telemetry wires OpenTelemetry trace export.
//
// The unit loader emits unit.load, unit.fetch and unit.execute spans through
// the global tracer provider. Without an endpoint those spans are dropped.
package telemetry
