package fogbugz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SearchRequest is a fluent query against the case database. Configure
// it with Query or Compose plus optional Cols and Max, then call Do.
type SearchRequest struct {
	runner commandRunner
	obs    *observer

	query string
	cols  []Column
	max   int
}

// Query sets the raw search query string.
func (r *SearchRequest) Query(q string) *SearchRequest {
	r.query = q
	return r
}

// Compose sets the query from a SearchBuilder.
func (r *SearchRequest) Compose(b *SearchBuilder) *SearchRequest {
	if b != nil {
		r.query = b.String()
	}
	return r
}

// Cols sets the columns returned for each matching case.
// Defaults to ixBug and sTitle.
func (r *SearchRequest) Cols(cols ...Column) *SearchRequest {
	r.cols = cols
	return r
}

// Max caps the number of returned cases. Zero means server default.
func (r *SearchRequest) Max(n int) *SearchRequest {
	r.max = n
	return r
}

// casesPayload is the data member shape of search and listCases
// responses.
type casesPayload struct {
	Cases []Case `json:"cases"`
	Count int    `json:"count"`
}

// Do runs the search and decodes the matching cases.
func (r *SearchRequest) Do(ctx context.Context) (_ []Case, err error) {
	start := time.Now()
	defer func() { r.obs.observe("search", start, err) }()

	data, err := r.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var payload casesPayload
	if err = json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("search: decode cases: %w", err)
	}
	return payload.Cases, nil
}

// DoRaw runs the search and returns the raw data member of the
// response, for callers requesting columns the Case type does not
// carry.
func (r *SearchRequest) DoRaw(ctx context.Context) (_ json.RawMessage, err error) {
	start := time.Now()
	defer func() { r.obs.observe("search.raw", start, err) }()

	data, err := r.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return data, nil
}

func (r *SearchRequest) run(ctx context.Context) (json.RawMessage, error) {
	cols := r.cols
	if len(cols) == 0 {
		cols = []Column{ColCaseID, ColTitle}
	}

	params := map[string]any{
		"q":    r.query,
		"cols": columnNames(cols),
	}
	if r.max > 0 {
		params["max"] = r.max
	}
	return r.runner.Run(ctx, "search", params)
}
