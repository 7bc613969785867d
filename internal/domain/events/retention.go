package events

import (
	"context"
	"time"
)

// ApplyRetention deletes event rows older than the cutoff.
// Punches themselves are never touched by retention; only the event log is
// cleared, in bulk, once records age past the configured window.
func (s *Service) ApplyRetention(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM domain_events
    WHERE created_at < $1
  `, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
