package fogbugz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// requiredListColumns are force-included in list queries so every Case
// field decodes.
var requiredListColumns = []Column{ColCaseID, ColProjectID, ColProject, ColTitle}

// CaseService manages cases: listing, details and lifecycle commands.
type CaseService struct {
	runner commandRunner
	obs    *observer
}

// ListOptions configures CaseService.List.
type ListOptions struct {
	// Filter is either a saved filter id (numeric or empty, routed to
	// listCases) or a search query (anything else, routed to search).
	Filter string
	Cols   []Column
	Max    int
}

// List returns cases matching a saved filter or a search query.
func (s *CaseService) List(ctx context.Context, opts ListOptions) (_ []Case, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.list", start, err) }()

	filter := strings.TrimSpace(opts.Filter)
	cols := ensureColumns(opts.Cols, requiredListColumns)

	params := map[string]any{"cols": columnNames(cols)}
	if opts.Max > 0 {
		params["max"] = opts.Max
	}

	// A saved filter id is numeric; anything else is a search query and
	// the listCases command rejects it.
	cmd := "search"
	if _, nerr := strconv.ParseUint(filter, 10, 64); filter == "" || nerr == nil {
		cmd = "listCases"
		params["sFilter"] = filter
	} else {
		params["q"] = filter
	}

	data, err := s.runner.Run(ctx, cmd, params)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	var payload casesPayload
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("list cases: decode: %w", err)
	}
	return payload.Cases, nil
}

// defaultDetailColumns is the column set Details requests when the
// caller gives none.
var defaultDetailColumns = []Column{
	ColCaseID, ColTitle, ColEvents, ColProject, ColArea,
	ColPriority, ColStatus, ColCategory, ColIsOpen,
}

// Details fetches one case with its event history.
func (s *CaseService) Details(ctx context.Context, caseID uint64, cols ...Column) (_ CaseDetails, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.details", start, err) }()

	if len(cols) == 0 {
		cols = defaultDetailColumns
	}

	data, err := s.runner.Run(ctx, "search", map[string]any{
		"q":    strconv.FormatUint(caseID, 10),
		"cols": columnNames(cols),
	})
	if err != nil {
		return CaseDetails{}, fmt.Errorf("case details: %w", err)
	}

	var payload struct {
		Cases []json.RawMessage `json:"cases"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return CaseDetails{}, fmt.Errorf("case details: decode: %w", err)
	}
	if len(payload.Cases) == 0 {
		return CaseDetails{}, fmt.Errorf("case details: case %d not found", caseID)
	}

	details, err := decodeCaseDetails(payload.Cases[0])
	if err != nil {
		return CaseDetails{}, fmt.Errorf("case details: %w", err)
	}
	return details, nil
}

// decodeCaseDetails decodes one case object, dropping non-object
// entries from the events array first. The API pads it with bare
// strings for some event kinds.
func decodeCaseDetails(raw json.RawMessage) (CaseDetails, error) {
	var shell struct {
		CaseDetails
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(raw, &shell); err != nil {
		return CaseDetails{}, fmt.Errorf("decode case: %w", err)
	}

	details := shell.CaseDetails
	details.Events = make([]Event, 0, len(shell.Events))
	for _, re := range shell.Events {
		if !bytes.HasPrefix(bytes.TrimSpace(re), []byte("{")) {
			continue
		}
		var ev Event
		if err := json.Unmarshal(re, &ev); err != nil {
			return CaseDetails{}, fmt.Errorf("decode event: %w", err)
		}
		details.Events = append(details.Events, ev)
	}
	return details, nil
}

// NewCase holds the fields of a case creation. Title and Description
// are required.
type NewCase struct {
	Title        string
	Description  string
	ProjectID    uint64
	Project      string
	Area         string
	Category     Category
	AssignedToID uint64
	Priority     uint64
	MilestoneID  uint64
	Tags         []string
}

// Create opens a new case and returns its id.
func (s *CaseService) Create(ctx context.Context, c NewCase) (_ uint64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.create", start, err) }()

	params := map[string]any{
		"sTitle": c.Title,
		"sEvent": c.Description,
	}
	if c.ProjectID > 0 {
		params["ixProject"] = c.ProjectID
	}
	if c.Project != "" {
		params["sProject"] = c.Project
	}
	if c.Area != "" {
		params["sArea"] = c.Area
	}
	if c.Category > 0 {
		params["ixCategory"] = int(c.Category)
	}
	if c.AssignedToID > 0 {
		params["ixPersonAssignedTo"] = c.AssignedToID
	}
	if c.Priority > 0 {
		params["ixPriority"] = c.Priority
	}
	if c.MilestoneID > 0 {
		params["ixFixFor"] = c.MilestoneID
	}
	if len(c.Tags) > 0 {
		params["sTags"] = strings.Join(c.Tags, ",")
	}

	data, err := s.runner.Run(ctx, "new", params)
	if err != nil {
		return 0, fmt.Errorf("create case: %w", err)
	}

	var payload struct {
		Case struct {
			CaseID uint64 `json:"ixBug"`
		} `json:"case"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("create case: decode: %w", err)
	}
	if payload.Case.CaseID == 0 {
		return 0, fmt.Errorf("create case: missing case id in response")
	}
	return payload.Case.CaseID, nil
}

// EditCase holds the changes of a case edit. Zero-valued fields are
// left untouched.
type EditCase struct {
	CaseID      uint64
	Title       string
	Comment     string
	ProjectID   uint64
	Area        string
	Category    Category
	Priority    uint64
	MilestoneID uint64
	Tags        []string
}

// Edit updates an existing case.
func (s *CaseService) Edit(ctx context.Context, e EditCase) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.edit", start, err) }()

	params := map[string]any{"ixBug": e.CaseID}
	if e.Title != "" {
		params["sTitle"] = e.Title
	}
	if e.Comment != "" {
		params["sEvent"] = e.Comment
	}
	if e.ProjectID > 0 {
		params["ixProject"] = e.ProjectID
	}
	if e.Area != "" {
		params["sArea"] = e.Area
	}
	if e.Category > 0 {
		params["ixCategory"] = int(e.Category)
	}
	if e.Priority > 0 {
		params["ixPriority"] = e.Priority
	}
	if e.MilestoneID > 0 {
		params["ixFixFor"] = e.MilestoneID
	}
	if len(e.Tags) > 0 {
		params["sTags"] = strings.Join(e.Tags, ",")
	}

	if _, err = s.runner.Run(ctx, "edit", params); err != nil {
		return fmt.Errorf("edit case: %w", err)
	}
	return nil
}

// Assign hands a case to another person.
func (s *CaseService) Assign(ctx context.Context, caseID, personID uint64, comment string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.assign", start, err) }()

	params := map[string]any{
		"ixBug":              caseID,
		"ixPersonAssignedTo": personID,
	}
	if comment != "" {
		params["sEvent"] = comment
	}

	if _, err = s.runner.Run(ctx, "assign", params); err != nil {
		return fmt.Errorf("assign case: %w", err)
	}
	return nil
}

// ResolveCase holds the fields of a case resolution. StatusID zero
// resolves to the category default status.
type ResolveCase struct {
	CaseID       uint64
	StatusID     uint64
	AssignedToID uint64
	Comment      string
}

// Resolve marks a case resolved.
func (s *CaseService) Resolve(ctx context.Context, r ResolveCase) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.resolve", start, err) }()

	params := map[string]any{"ixBug": r.CaseID}
	if r.StatusID > 0 {
		params["ixStatus"] = r.StatusID
	}
	if r.AssignedToID > 0 {
		params["ixPersonAssignedTo"] = r.AssignedToID
	}
	if r.Comment != "" {
		params["sEvent"] = r.Comment
	}

	if _, err = s.runner.Run(ctx, "resolve", params); err != nil {
		return fmt.Errorf("resolve case: %w", err)
	}
	return nil
}

// Reactivate reopens a resolved case. assignTo zero keeps the current
// assignee.
func (s *CaseService) Reactivate(ctx context.Context, caseID, assignTo uint64, comment string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.reactivate", start, err) }()

	params := map[string]any{"ixBug": caseID}
	if assignTo > 0 {
		params["ixPersonAssignedTo"] = assignTo
	}
	if comment != "" {
		params["sEvent"] = comment
	}

	if _, err = s.runner.Run(ctx, "reactivate", params); err != nil {
		return fmt.Errorf("reactivate case: %w", err)
	}
	return nil
}

// Close closes a resolved case.
func (s *CaseService) Close(ctx context.Context, caseID uint64, comment string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("cases.close", start, err) }()

	params := map[string]any{"ixBug": caseID}
	if comment != "" {
		params["sEvent"] = comment
	}

	if _, err = s.runner.Run(ctx, "close", params); err != nil {
		return fmt.Errorf("close case: %w", err)
	}
	return nil
}

// ensureColumns appends the required columns missing from cols.
func ensureColumns(cols, required []Column) []Column {
	out := make([]Column, len(cols), len(cols)+len(required))
	copy(out, cols)
	for _, req := range required {
		found := false
		for _, c := range out {
			if c == req {
				found = true
				break
			}
		}
		if !found {
			out = append(out, req)
		}
	}
	return out
}
