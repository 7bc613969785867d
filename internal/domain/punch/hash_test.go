package punch

import (
	"testing"
	"time"
)

func TestComputeHashDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	first := ComputeHash("emp-1", TypeEntry, at, "salt")
	second := ComputeHash("emp-1", TypeEntry, at, "salt")
	if first != second {
		t.Fatalf("same inputs produced different digests: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
}

func TestComputeHashSensitivity(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	base := ComputeHash("emp-1", TypeEntry, at, "salt")

	variants := map[string]string{
		"employee": ComputeHash("emp-2", TypeEntry, at, "salt"),
		"type":     ComputeHash("emp-1", TypeExit, at, "salt"),
		"time":     ComputeHash("emp-1", TypeEntry, at.Add(time.Second), "salt"),
		"salt":     ComputeHash("emp-1", TypeEntry, at, "other"),
	}
	for field, digest := range variants {
		if digest == base {
			t.Fatalf("changing %s did not change the digest", field)
		}
	}
}

func TestComputeHashNormalizesTimezone(t *testing.T) {
	utc := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	saoPaulo := utc.In(time.FixedZone("BRT", -3*3600))

	if ComputeHash("emp-1", TypeEntry, utc, "salt") != ComputeHash("emp-1", TypeEntry, saoPaulo, "salt") {
		t.Fatal("same instant in different zones produced different digests")
	}
}

func TestComputeHashIgnoresSubsecond(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if ComputeHash("emp-1", TypeEntry, at, "salt") != ComputeHash("emp-1", TypeEntry, at.Add(500*time.Millisecond), "salt") {
		t.Fatal("sub-second fraction changed the digest")
	}
}

func TestVerifyHash(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	p := TimePunch{
		EmployeeID: "emp-1",
		Type:       TypeEntry,
		PunchedAt:  at,
		Hash:       ComputeHash("emp-1", TypeEntry, at, "salt"),
	}

	if !VerifyHash(p, "salt") {
		t.Fatal("expected intact punch to verify")
	}

	tampered := p
	tampered.PunchedAt = at.Add(time.Hour)
	if VerifyHash(tampered, "salt") {
		t.Fatal("expected tampered timestamp to fail verification")
	}
}
