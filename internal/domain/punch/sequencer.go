package punch

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Sequencer allocates NSR values from the durable counter row. The counter
// is incremented inside the same transaction that inserts the punch, so a
// rolled-back write never consumes a number and the sequence stays gapless.
type Sequencer struct{}

// Next increments the counter within tx and returns the allocated NSR.
func (Sequencer) Next(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var nsr int64
	err := tx.QueryRow(ctx, `
    UPDATE nsr_counters SET value = value + 1, updated_at = now()
    WHERE id = 1
    RETURNING value
  `).Scan(&nsr)
	if err != nil {
		return 0, &PersistenceError{Op: "nsr allocation", Err: err}
	}
	return uint64(nsr), nil
}
