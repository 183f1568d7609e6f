// Package testdoubles provides spies for the metrics and tracing collector interfaces,
// so instrumentation can be verified without a telemetry backend.
package testdoubles
