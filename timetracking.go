package fogbugz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// timeStampFormat is the wire format of dtStart/dtEnd parameters.
const timeStampFormat = "2006-01-02T15:04:05"

// TimeTrackingService drives the per-person stopwatch and work
// intervals.
type TimeTrackingService struct {
	runner commandRunner
	obs    *observer
}

// StartWork starts the stopwatch on a case.
func (s *TimeTrackingService) StartWork(ctx context.Context, caseID uint64) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("timetracking.start", start, err) }()

	if _, err = s.runner.Run(ctx, "startWork", map[string]any{"ixBug": caseID}); err != nil {
		return fmt.Errorf("start work: %w", err)
	}
	return nil
}

// StopWork stops the stopwatch.
func (s *TimeTrackingService) StopWork(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("timetracking.stop", start, err) }()

	if _, err = s.runner.Run(ctx, "stopWork", nil); err != nil {
		return fmt.Errorf("stop work: %w", err)
	}
	return nil
}

// NewInterval records a past work interval on a case. Title is an
// optional description of the work done.
func (s *TimeTrackingService) NewInterval(ctx context.Context, caseID uint64, from, to time.Time, title string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("timetracking.newinterval", start, err) }()

	if !to.After(from) {
		return fmt.Errorf("new interval: end %s not after start %s", to.Format(timeStampFormat), from.Format(timeStampFormat))
	}

	params := map[string]any{
		"ixBug":   caseID,
		"dtStart": from.Format(timeStampFormat),
		"dtEnd":   to.Format(timeStampFormat),
	}
	if title != "" {
		params["sTitle"] = title
	}

	if _, err = s.runner.Run(ctx, "newInterval", params); err != nil {
		return fmt.Errorf("new interval: %w", err)
	}
	return nil
}

// IntervalFilter restricts ListIntervals. Zero-valued fields are not
// sent.
type IntervalFilter struct {
	CaseID   uint64
	PersonID uint64
	Start    time.Time
	End      time.Time
}

// ListIntervals returns recorded work intervals matching the filter.
func (s *TimeTrackingService) ListIntervals(ctx context.Context, f IntervalFilter) (_ []TimeInterval, err error) {
	start := time.Now()
	defer func() { s.obs.observe("timetracking.listintervals", start, err) }()

	params := map[string]any{}
	if f.CaseID > 0 {
		params["ixBug"] = f.CaseID
	}
	if f.PersonID > 0 {
		params["ixPerson"] = f.PersonID
	}
	if !f.Start.IsZero() {
		params["dtStart"] = f.Start.Format(timeStampFormat)
	}
	if !f.End.IsZero() {
		params["dtEnd"] = f.End.Format(timeStampFormat)
	}

	data, err := s.runner.Run(ctx, "listIntervals", params)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}

	var payload struct {
		Intervals []TimeInterval `json:"intervals"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("list intervals: decode: %w", err)
	}
	return payload.Intervals, nil
}
