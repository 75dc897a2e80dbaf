package fogbugz

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	oapitypes "github.com/oapi-codegen/runtime/types"
)

// hoursColumns is the column set AggregateHours requests.
var hoursColumns = []Column{
	ColCaseID, ColTitle, ColProject,
	ColHoursElapsed, ColHoursCurrEst, ColHoursOrigEst, ColAssignedTo,
}

// ReportService produces time estimation reports.
type ReportService struct {
	runner commandRunner
	obs    *observer
}

// HoursRemaining returns the raw hours remaining report for a
// milestone. The shape varies per installation so the data is returned
// undecoded.
func (s *ReportService) HoursRemaining(ctx context.Context, milestoneID uint64) (_ json.RawMessage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reports.hoursremaining", start, err) }()

	data, err := s.runner.Run(ctx, "viewHoursRemainingReport", map[string]any{"ixFixFor": milestoneID})
	if err != nil {
		return nil, fmt.Errorf("hours remaining report: %w", err)
	}
	return data, nil
}

// HoursQuery restricts AggregateHours. Zero-valued fields are not
// sent; a zero ProjectID queries all projects.
type HoursQuery struct {
	ProjectID uint64
	PersonID  uint64
	Start     *oapitypes.Date
	End       *oapitypes.Date
}

// AggregateHours returns per-case elapsed and estimated hours,
// optionally restricted to one project, person or date range.
func (s *ReportService) AggregateHours(ctx context.Context, q HoursQuery) (_ []CaseHours, err error) {
	start := time.Now()
	defer func() { s.obs.observe("reports.aggregatehours", start, err) }()

	query := NewSearch().Term("*")
	if q.ProjectID > 0 {
		query = NewSearch().ProjectID(q.ProjectID)
	}

	params := map[string]any{
		"q":    query.String(),
		"cols": columnNames(hoursColumns),
	}
	if q.PersonID > 0 {
		params["ixPerson"] = q.PersonID
	}
	if q.Start != nil {
		params["dtStart"] = q.Start.String()
	}
	if q.End != nil {
		params["dtEnd"] = q.End.String()
	}

	data, err := s.runner.Run(ctx, "search", params)
	if err != nil {
		return nil, fmt.Errorf("aggregate hours: %w", err)
	}

	var payload struct {
		Cases []CaseHours `json:"cases"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("aggregate hours: decode: %w", err)
	}
	return payload.Cases, nil
}

// SummarizeByProject folds per-case hours into per-project totals,
// sorted by project name. Estimates prefer the current estimate and
// fall back to the original one.
func SummarizeByProject(cases []CaseHours) []ProjectHours {
	byProject := make(map[string]*ProjectHours)
	for _, c := range cases {
		ph, ok := byProject[c.Project]
		if !ok {
			ph = &ProjectHours{Project: c.Project}
			byProject[c.Project] = ph
		}
		ph.CaseCount++
		if c.HoursElapsed != nil {
			ph.TotalElapsed += *c.HoursElapsed
		}
		switch {
		case c.HoursCurrentEst != nil:
			ph.TotalEstimate += *c.HoursCurrentEst
		case c.HoursOriginalEst != nil:
			ph.TotalEstimate += *c.HoursOriginalEst
		}
	}

	out := make([]ProjectHours, 0, len(byProject))
	for _, ph := range byProject {
		out = append(out, *ph)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Project < out[j].Project })
	return out
}
