package punch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ponto/internal/domain/geofence"
)

const (
	PolicyStrict     = "strict"
	PolicyPermissive = "permissive"
)

const (
	EventRecorded           = "punch.recorded"
	EventTransitionWarning  = "punch.transition_warning"
	EventIntegrityViolation = "punch.integrity_violation"
)

// Options control recording policy. TransitionPolicy selects hard rejection
// (strict) or record-with-warning (permissive) for illegal punch-type
// transitions; RequireGeolocation blocks punches that carry no coordinates.
type Options struct {
	HashSalt           string
	TransitionPolicy   string
	RequireGeolocation bool
}

type Service struct {
	Store  StoreAPI
	Fences FenceSource
	Events EventSink
	Opts   Options
}

func NewService(store StoreAPI, fences FenceSource, events EventSink, opts Options) *Service {
	if opts.TransitionPolicy == "" {
		opts.TransitionPolicy = PolicyStrict
	}
	return &Service{Store: store, Fences: fences, Events: events, Opts: opts}
}

// RecordResult is the recorder's outcome: the persisted punch plus a warning
// when the permissive policy accepted an illegal transition.
type RecordResult struct {
	Punch             TimePunch `json:"punch"`
	TransitionWarning string    `json:"transitionWarning,omitempty"`
}

// Record validates and persists one punch. The geofence result is
// snapshotted on the row at punch time; later fence edits never rewrite it.
// NSR allocation and the insert are one atomic unit inside the store.
func (s *Service) Record(ctx context.Context, req RecordRequest) (RecordResult, error) {
	if !ValidType(req.Type) {
		return RecordResult{}, ErrUnknownType
	}
	if !ValidMethod(req.Method) {
		return RecordResult{}, ErrUnknownMethod
	}

	dayPunches, err := s.Store.ListForDay(ctx, req.EmployeeID, req.At)
	if err != nil {
		return RecordResult{}, err
	}

	state := DeriveDayState(dayPunches)
	var warning string
	if !LegalTransition(state, req.Type) {
		terr := &TransitionError{State: state, Requested: req.Type}
		if s.Opts.TransitionPolicy == PolicyStrict {
			return RecordResult{}, terr
		}
		warning = terr.Error()
	}

	p := TimePunch{
		EmployeeID: req.EmployeeID,
		PunchedAt:  req.At,
		Type:       req.Type,
		Method:     req.Method,
		AccuracyM:  req.AccuracyM,
		FaceScore:  req.FaceScore,
		IP:         req.IP,
		UserAgent:  req.UserAgent,
		Notes:      req.Notes,
	}

	if err := s.applyGeofence(ctx, req, &p); err != nil {
		return RecordResult{}, err
	}

	p.Hash = ComputeHash(p.EmployeeID, p.Type, p.PunchedAt, s.Opts.HashSalt)

	p, err = s.Store.Insert(ctx, p)
	if err != nil {
		return RecordResult{}, err
	}

	s.emit(ctx, p.EmployeeID, EventRecorded, map[string]any{
		"punchId": p.ID,
		"nsr":     p.NSR,
		"type":    p.Type,
		"method":  p.Method,
	})
	if warning != "" {
		s.emit(ctx, p.EmployeeID, EventTransitionWarning, map[string]any{
			"punchId": p.ID,
			"state":   string(state),
			"type":    p.Type,
		})
	}

	return RecordResult{Punch: p, TransitionWarning: warning}, nil
}

func (s *Service) applyGeofence(ctx context.Context, req RecordRequest, p *TimePunch) error {
	if req.Latitude == nil || req.Longitude == nil {
		if req.Latitude != nil || req.Longitude != nil {
			return &LocationError{Reason: "incomplete coordinate pair"}
		}
		if s.Opts.RequireGeolocation {
			return &LocationError{Reason: "coordinates required but missing"}
		}
		// No-location punch: within_fence stays NULL, distinct from "outside".
		return nil
	}

	if !geofence.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return &LocationError{Reason: "coordinates out of range"}
	}

	fences, err := s.Fences.ListActive(ctx)
	if err != nil {
		return &PersistenceError{Op: "geofence lookup", Err: err}
	}

	result := geofence.Validate(req.Latitude, req.Longitude, fences)
	p.Latitude = req.Latitude
	p.Longitude = req.Longitude
	within := result.WithinAny
	p.WithinFence = &within
	if result.Matched != nil {
		p.FenceName = result.Matched.Name
	}
	return nil
}

// DayOverview is the recorder's read model for a single day: current state
// and the legal next punch types.
type DayOverview struct {
	Punches []TimePunch `json:"punches"`
	State   DayState    `json:"state"`
	Next    []string    `json:"legalNextTypes"`
}

func (s *Service) Day(ctx context.Context, employeeID string, day time.Time) (DayOverview, error) {
	punches, err := s.Store.ListForDay(ctx, employeeID, day)
	if err != nil {
		return DayOverview{}, err
	}
	state := DeriveDayState(punches)
	return DayOverview{Punches: punches, State: state, Next: LegalNext(state)}, nil
}

// IntegrityReport summarizes a ledger audit.
type IntegrityReport struct {
	Checked    int              `json:"checked"`
	Violations []IntegrityIssue `json:"violations,omitempty"`
}

type IntegrityIssue struct {
	PunchID int64  `json:"punchId"`
	NSR     uint64 `json:"nsr"`
	Reason  string `json:"reason"`
}

// VerifyIntegrity recomputes every stored hash and scans the NSR sequence
// for duplicates and gaps. Violations are reported, never corrected, and
// each one is emitted as a domain event for out-of-band alerting.
func (s *Service) VerifyIntegrity(ctx context.Context) (IntegrityReport, error) {
	punches, err := s.Store.ListByNSR(ctx)
	if err != nil {
		return IntegrityReport{}, err
	}

	report := IntegrityReport{Checked: len(punches)}
	var prev uint64
	for i, p := range punches {
		if !VerifyHash(p, s.Opts.HashSalt) {
			report.Violations = append(report.Violations, IntegrityIssue{
				PunchID: p.ID, NSR: p.NSR, Reason: "stored hash does not match recomputed value",
			})
		}
		if i > 0 {
			switch {
			case p.NSR == prev:
				report.Violations = append(report.Violations, IntegrityIssue{
					PunchID: p.ID, NSR: p.NSR, Reason: "duplicate nsr",
				})
			case p.NSR != prev+1:
				report.Violations = append(report.Violations, IntegrityIssue{
					PunchID: p.ID, NSR: p.NSR, Reason: fmt.Sprintf("nsr gap after %d", prev),
				})
			}
		}
		prev = p.NSR
	}

	for _, v := range report.Violations {
		s.emit(ctx, "", EventIntegrityViolation, v)
	}
	return report, nil
}

func (s *Service) emit(ctx context.Context, employeeID, eventType string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(ctx, employeeID, eventType, payload); err != nil {
		slog.Warn("domain event emit failed", "eventType", eventType, "err", err)
	}
}
