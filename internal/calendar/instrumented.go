package calendar

import (
	"context"
	"time"

	"schedbot/internal/instrumentation"
)

// InstrumentedGateway wraps a Gateway and records operation metrics.
type InstrumentedGateway struct {
	next    Gateway
	metrics *instrumentation.Metrics
}

// NewInstrumentedGateway decorates a gateway with operation metrics. A nil
// metrics recorder returns the gateway unchanged.
func NewInstrumentedGateway(next Gateway, metrics *instrumentation.Metrics) Gateway {
	if metrics == nil {
		return next
	}
	return &InstrumentedGateway{next: next, metrics: metrics}
}

func (g *InstrumentedGateway) record(ctx context.Context, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	g.metrics.RecordCalendarOperation(ctx, operation, status, time.Since(start))
}

func (g *InstrumentedGateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	start := time.Now()
	events, err := g.next.ListEvents(ctx, calendarID, timeMin, timeMax)
	g.record(ctx, instrumentation.OperationList, start, err)
	return events, err
}

func (g *InstrumentedGateway) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	start := time.Now()
	event, err := g.next.GetEvent(ctx, calendarID, eventID)
	g.record(ctx, instrumentation.OperationGet, start, err)
	return event, err
}

func (g *InstrumentedGateway) InsertEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	start := time.Now()
	event, err := g.next.InsertEvent(ctx, calendarID, input)
	g.record(ctx, instrumentation.OperationCreate, start, err)
	return event, err
}

func (g *InstrumentedGateway) UpdateEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time) (*Event, error) {
	began := time.Now()
	event, err := g.next.UpdateEventTime(ctx, calendarID, eventID, start, end)
	g.record(ctx, instrumentation.OperationUpdate, began, err)
	return event, err
}

func (g *InstrumentedGateway) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	start := time.Now()
	err := g.next.DeleteEvent(ctx, calendarID, eventID)
	g.record(ctx, instrumentation.OperationDelete, start, err)
	return err
}

var _ Gateway = (*InstrumentedGateway)(nil)
