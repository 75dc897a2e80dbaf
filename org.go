package fogbugz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// OrgService lists the configuration objects of an installation.
type OrgService struct {
	runner commandRunner
	obs    *observer
}

// ListProjects returns all projects.
func (s *OrgService) ListProjects(ctx context.Context) (_ []Project, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.projects", start, err) }()

	var payload struct {
		Projects []Project `json:"projects"`
	}
	if err = s.list(ctx, "listProjects", nil, &payload); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return payload.Projects, nil
}

// ListPeople returns normal and community accounts. Virtual accounts
// are excluded.
func (s *OrgService) ListPeople(ctx context.Context) (_ []Person, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.people", start, err) }()

	params := map[string]any{
		"fIncludeNormal":    true,
		"fIncludeCommunity": true,
		"fIncludeVirtual":   false,
	}
	var payload struct {
		People []Person `json:"people"`
	}
	if err = s.list(ctx, "listPeople", params, &payload); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return payload.People, nil
}

// ListAreas returns areas, optionally restricted to one project.
func (s *OrgService) ListAreas(ctx context.Context, projectID uint64) (_ []Area, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.areas", start, err) }()

	params := map[string]any{}
	if projectID > 0 {
		params["ixProject"] = projectID
	}
	var payload struct {
		Areas []Area `json:"areas"`
	}
	if err = s.list(ctx, "listAreas", params, &payload); err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return payload.Areas, nil
}

// ListCategories returns all case categories.
func (s *OrgService) ListCategories(ctx context.Context) (_ []CategoryInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.categories", start, err) }()

	var payload struct {
		Categories []CategoryInfo `json:"categories"`
	}
	if err = s.list(ctx, "listCategories", nil, &payload); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return payload.Categories, nil
}

// ListPriorities returns all priority levels.
func (s *OrgService) ListPriorities(ctx context.Context) (_ []PriorityInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.priorities", start, err) }()

	var payload struct {
		Priorities []PriorityInfo `json:"priorities"`
	}
	if err = s.list(ctx, "listPriorities", nil, &payload); err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return payload.Priorities, nil
}

// ListStatuses returns workflow statuses, optionally restricted to one
// category.
func (s *OrgService) ListStatuses(ctx context.Context, categoryID uint64) (_ []StatusInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.statuses", start, err) }()

	params := map[string]any{}
	if categoryID > 0 {
		params["ixCategory"] = categoryID
	}
	var payload struct {
		Statuses []StatusInfo `json:"statuses"`
	}
	if err = s.list(ctx, "listStatuses", params, &payload); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return payload.Statuses, nil
}

// ListMilestones returns FixFor targets, optionally restricted to one
// project.
func (s *OrgService) ListMilestones(ctx context.Context, projectID uint64) (_ []Milestone, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.milestones", start, err) }()

	params := map[string]any{}
	if projectID > 0 {
		params["ixProject"] = projectID
	}
	var payload struct {
		Milestones []Milestone `json:"fixfors"`
	}
	if err = s.list(ctx, "listFixFors", params, &payload); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return payload.Milestones, nil
}

// ListFilters returns all saved filters. The response mixes a default
// filter id, bare filter-name strings and full filter objects; all
// three forms are normalized into SavedFilter values.
func (s *OrgService) ListFilters(ctx context.Context) (_ []SavedFilter, err error) {
	start := time.Now()
	defer func() { s.obs.observe("org.filters", start, err) }()

	data, err := s.runner.Run(ctx, "listFilters", nil)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}

	var payload struct {
		Default string            `json:"sFilter"`
		Filters []json.RawMessage `json:"filters"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("list filters: decode: %w", err)
	}

	var filters []SavedFilter
	if payload.Default != "" {
		filters = append(filters, SavedFilter{
			ID:   payload.Default,
			Type: "default",
			Name: "Default",
		})
	}
	for _, raw := range payload.Filters {
		f, ok := decodeSavedFilter(raw)
		if ok {
			filters = append(filters, f)
		}
	}
	return filters, nil
}

func decodeSavedFilter(raw json.RawMessage) (SavedFilter, bool) {
	var name string
	if json.Unmarshal(raw, &name) == nil {
		return SavedFilter{ID: name, Type: "builtin", Name: name}, true
	}

	var obj struct {
		ID          string `json:"sFilter"`
		Type        string `json:"type"`
		Name        string `json:"#text"`
		Description string `json:"#cdata-section"`
	}
	if json.Unmarshal(raw, &obj) != nil {
		return SavedFilter{}, false
	}
	filterType := obj.Type
	if filterType == "" {
		filterType = "unknown"
	}
	return SavedFilter{
		ID:          obj.ID,
		Type:        filterType,
		Name:        obj.Name,
		Description: obj.Description,
	}, true
}

func (s *OrgService) list(ctx context.Context, cmd string, params map[string]any, out any) error {
	data, err := s.runner.Run(ctx, cmd, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
