package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is one append-only domain event row consumed by external audit and
// alerting collaborators.
type Event struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId,omitempty"`
	EventType  string          `json:"eventType"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
	IP         string          `json:"ip,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Filter struct {
	EmployeeID string
	EventType  string
	Limit      int
}

type ctxKeyMeta struct{}

// RequestMeta is the originating request's correlation data. Transport stamps
// it into the context so events recorded deeper in the call stack carry it;
// background jobs record events without any.
type RequestMeta struct {
	RequestID string
	IP        string
}

func WithMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, ctxKeyMeta{}, meta)
}

func MetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(ctxKeyMeta{}).(RequestMeta)
	return meta
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, employeeID, eventType string, payload any) error {
	var payloadJSON []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = encoded
	}

	var empID *string
	if employeeID != "" {
		empID = &employeeID
	}

	meta := MetaFrom(ctx)
	var requestID, ip *string
	if meta.RequestID != "" {
		requestID = &meta.RequestID
	}
	if meta.IP != "" {
		ip = &meta.IP
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO domain_events (employee_id, event_type, payload, request_id, ip)
    VALUES ($1, $2, $3, $4, $5)
  `, empID, eventType, payloadJSON, requestID, ip)
	return err
}

// buildListQuery adds a predicate per set filter field. An empty field adds
// nothing, so the employee filter's uuid cast only ever sees a real value.
func buildListQuery(filter Filter, limit int) (string, []any) {
	query := `
    SELECT id, COALESCE(employee_id::text, ''), event_type, payload,
           COALESCE(request_id, ''), COALESCE(ip, ''), created_at
    FROM domain_events`

	var clauses []string
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d::uuid", len(args)))
	}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		clauses = append(clauses, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += "\n    WHERE " + strings.Join(clauses, " AND ")
	}

	args = append(args, limit)
	query += fmt.Sprintf("\n    ORDER BY created_at DESC\n    LIMIT $%d", len(args))
	return query, args
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query, args := buildListQuery(filter, limit)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EventType, &e.Payload, &e.RequestID, &e.IP, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
