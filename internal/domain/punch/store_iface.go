package punch

import (
	"context"
	"time"

	"ponto/internal/domain/geofence"
)

type StoreAPI interface {
	Insert(ctx context.Context, p TimePunch) (TimePunch, error)
	ListForDay(ctx context.Context, employeeID string, day time.Time) ([]TimePunch, error)
	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimePunch, error)
	ListByNSR(ctx context.Context) ([]TimePunch, error)
}

// FenceSource supplies the active fences a punch is validated against.
type FenceSource interface {
	ListActive(ctx context.Context) ([]geofence.Geofence, error)
}

// EventSink receives domain events for external logging/alerting. Emission
// failures are logged but never fail the punch itself.
type EventSink interface {
	Record(ctx context.Context, employeeID, eventType string, payload any) error
}
