// Package oteladapters implements the eventstore metrics and tracing collector interfaces
// with the OpenTelemetry API. Build the collectors from a Meter and a Tracer of the
// configured providers; no-op providers make them free when no exporter is configured.
package oteladapters
