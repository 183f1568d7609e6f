package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AntonStoeckl/biblioteca/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried"
	metricEventsAppended       = "eventstore_events_appended"
	metricDatabaseErrors       = "eventstore_database_errors_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"

	spanNameQuery  = "EventStore.Query"
	spanNameAppend = "EventStore.Append"

	spanAttrOperation  = "operation"
	spanAttrTable      = "db.table"
	spanAttrEventCount = "event_count"
	spanAttrDurationMS = "duration_ms"
	spanAttrErrorType  = "error_type"
	labelStatus        = "status"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"
	statusCanceled = "canceled"
	statusTimeout  = "timeout"

	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeCanceled            = "context_canceled"
	errorTypeTimeout             = "context_deadline_exceeded"
	errorTypeDatabase            = "database"
)

func (es EventStore) startSpan(ctx context.Context, operation string) (context.Context, eventstore.SpanContext) {
	if es.tracing == nil {
		return ctx, nil
	}

	name := spanNameQuery
	if operation == operationAppend {
		name = spanNameAppend
	}

	return es.tracing.StartSpan(ctx, name, map[string]string{
		spanAttrOperation: operation,
		spanAttrTable:     es.eventTableName,
	})
}

// observe records the outcome of one Query or Append and finishes its span.
func (es EventStore) observe(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	duration time.Duration,
	eventCount int,
	err error,
) {

	status, errorType := classifyError(err)
	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	durationMetric, countMetric := metricQueryDuration, metricEventsQueried
	if operation == operationAppend {
		durationMetric, countMetric = metricAppendDuration, metricEventsAppended
	}

	eventstore.RecordDuration(ctx, es.metrics, durationMetric, duration, labels)

	switch {
	case err == nil:
		eventstore.RecordValue(ctx, es.metrics, countMetric, float64(eventCount), labels)
	case errorType == errorTypeConcurrencyConflict:
		eventstore.IncrementCounter(ctx, es.metrics, metricConcurrencyConflicts, labels)
	default:
		eventstore.IncrementCounter(ctx, es.metrics, metricDatabaseErrors, map[string]string{
			spanAttrOperation: operation,
			labelStatus:       status,
			spanAttrErrorType: errorType,
		})
	}

	if es.tracing == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", es.durationToMilliseconds(duration)),
		spanAttrEventCount: strconv.Itoa(eventCount),
	}

	if errorType != "" {
		attrs[spanAttrErrorType] = errorType
	}

	es.tracing.FinishSpan(span, status, attrs)
}

func classifyError(err error) (status string, errorType string) {
	switch {
	case err == nil:
		return statusSuccess, ""
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return statusConflict, errorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return statusCanceled, errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout, errorTypeTimeout
	default:
		return statusError, errorTypeDatabase
	}
}
