package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

// SpySpan is a span the TracingCollectorSpy handed out.
type SpySpan struct {
	Name       string
	Status     string
	Finished   bool
	Attributes map[string]string
}

func (s *SpySpan) SetStatus(status string) {
	s.Status = status
}

func (s *SpySpan) AddAttribute(key, value string) {
	s.Attributes[key] = value
}

// TracingCollectorSpy records every started and finished span.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpan
}

// NewTracingCollectorSpy creates an empty spy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := &SpySpan{Name: name, Attributes: make(map[string]string, len(attrs))}
	maps.Copy(span.Attributes, attrs)
	s.spans = append(s.spans, span)

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	maps.Copy(span.Attributes, attrs)
	span.Status = status
	span.Finished = true
}

// Spans returns copies of all spans in start order.
func (s *TracingCollectorSpy) Spans() []SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpySpan, 0, len(s.spans))
	for _, span := range s.spans {
		spans = append(spans, SpySpan{
			Name:       span.Name,
			Status:     span.Status,
			Finished:   span.Finished,
			Attributes: maps.Clone(span.Attributes),
		})
	}

	return spans
}

var _ eventstore.TracingCollector = (*TracingCollectorSpy)(nil)
