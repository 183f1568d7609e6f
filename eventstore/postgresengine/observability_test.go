package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/biblioteca/eventstore"
	"github.com/AntonStoeckl/biblioteca/testutil/observability/testdoubles"
)

func givenObservedEventStoreWithoutDB(t *testing.T) (EventStore, *testdoubles.MetricsCollectorSpy, *testdoubles.TracingCollectorSpy) {
	t.Helper()

	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()

	es, err := newEventStore(WithTableName("events"), WithMetrics(metrics), WithTracing(tracing))
	require.NoError(t, err)

	return es, metrics, tracing
}

func Test_Observe_SuccessfulQuery_RecordsDurationAndEventCount(t *testing.T) {
	// arrange
	es, metrics, tracing := givenObservedEventStoreWithoutDB(t)
	ctx, span := es.startSpan(context.Background(), operationQuery)

	// act
	es.observe(ctx, span, operationQuery, 3*time.Millisecond, 4, nil)

	// assert
	require.Len(t, metrics.DurationRecords(), 1)
	assert.Equal(t, metricQueryDuration, metrics.DurationRecords()[0].Metric)
	assert.Equal(t, statusSuccess, metrics.DurationRecords()[0].Labels[labelStatus])
	require.Len(t, metrics.ValueRecords(), 1)
	assert.Equal(t, metricEventsQueried, metrics.ValueRecords()[0].Metric)
	assert.Equal(t, 4.0, metrics.ValueRecords()[0].Value)
	assert.Empty(t, metrics.CounterRecords())

	require.Len(t, tracing.Spans(), 1)
	querySpan := tracing.Spans()[0]
	assert.Equal(t, spanNameQuery, querySpan.Name)
	assert.True(t, querySpan.Finished)
	assert.Equal(t, statusSuccess, querySpan.Status)
	assert.Equal(t, "events", querySpan.Attributes[spanAttrTable])
	assert.Equal(t, "4", querySpan.Attributes[spanAttrEventCount])
}

func Test_Observe_ConflictingAppend_CountsTheConflict(t *testing.T) {
	// arrange
	es, metrics, tracing := givenObservedEventStoreWithoutDB(t)
	ctx, span := es.startSpan(context.Background(), operationAppend)

	// act
	es.observe(ctx, span, operationAppend, time.Millisecond, 2, eventstore.ErrConcurrencyConflict)

	// assert
	assert.Len(t, metrics.CountersNamed(metricConcurrencyConflicts), 1)
	assert.Empty(t, metrics.CountersNamed(metricDatabaseErrors))
	assert.Empty(t, metrics.ValueRecords())
	assert.Equal(t, metricAppendDuration, metrics.DurationRecords()[0].Metric)

	appendSpan := tracing.Spans()[0]
	assert.Equal(t, spanNameAppend, appendSpan.Name)
	assert.Equal(t, statusConflict, appendSpan.Status)
	assert.Equal(t, errorTypeConcurrencyConflict, appendSpan.Attributes[spanAttrErrorType])
}

func Test_Observe_FailedQuery_CountsADatabaseError(t *testing.T) {
	// arrange
	es, metrics, _ := givenObservedEventStoreWithoutDB(t)
	failure := errors.Join(eventstore.ErrQueryingEventsFailed, errors.New("connection reset"))

	// act
	es.observe(context.Background(), nil, operationQuery, time.Millisecond, 0, failure)

	// assert
	errorCounters := metrics.CountersNamed(metricDatabaseErrors)
	require.Len(t, errorCounters, 1)
	assert.Equal(t, errorTypeDatabase, errorCounters[0].Labels[spanAttrErrorType])
}

func Test_Observe_WithoutCollectors_DoesNothing(t *testing.T) {
	es := givenEventStoreWithoutDB(t)
	ctx, span := es.startSpan(context.Background(), operationQuery)

	assert.Nil(t, span)
	assert.NotPanics(t, func() {
		es.observe(ctx, span, operationQuery, time.Millisecond, 1, context.Canceled)
	})
}
