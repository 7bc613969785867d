package punch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeHash returns the integrity digest of a punch's immutable fields.
// It is recomputed during audits; a mismatch with the stored value means the
// row was tampered with. The timestamp is normalized to UTC with second
// precision so the digest is stable across storage round trips.
func ComputeHash(employeeID, punchType string, punchedAt time.Time, salt string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s",
		employeeID,
		punchType,
		punchedAt.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z"),
		salt,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifyHash recomputes the digest for a stored punch and compares it with
// the stored value.
func VerifyHash(p TimePunch, salt string) bool {
	return ComputeHash(p.EmployeeID, p.Type, p.PunchedAt, salt) == p.Hash
}
