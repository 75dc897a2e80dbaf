package fogbugz

import (
	"context"
	"strings"
	"testing"
)

func TestCaseService_ListDispatch(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		wantCmd   string
		wantKey   string
		wantValue string
	}{
		{"empty filter uses listCases", "", "listCases", "sFilter", ""},
		{"numeric filter is a saved filter id", "395", "listCases", "sFilter", "395"},
		{"query filter routes to search", "status:Active", "search", "q", "status:Active"},
		{"whitespace around filter is ignored", "  395  ", "listCases", "sFilter", "395"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := replyWith(`{"cases":[]}`)
			svc := testClient(runner).Cases()

			if _, err := svc.List(context.Background(), ListOptions{Filter: tt.filter}); err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if runner.lastCmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", runner.lastCmd, tt.wantCmd)
			}
			if got := runner.lastParams[tt.wantKey]; got != tt.wantValue {
				t.Errorf("params[%q] = %v, want %q", tt.wantKey, got, tt.wantValue)
			}
		})
	}
}

func TestCaseService_ListForcesRequiredColumns(t *testing.T) {
	runner := replyWith(`{"cases":[]}`)
	svc := testClient(runner).Cases()

	_, err := svc.List(context.Background(), ListOptions{
		Filter: "status:Active",
		Cols:   []Column{ColTitle},
		Max:    5,
	})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	cols := colsOf(runner.lastParams)
	for _, want := range []string{"ixBug", "ixProject", "sProject", "sTitle"} {
		if !containsCol(cols, want) {
			t.Errorf("cols %v missing %s", cols, want)
		}
	}
	// No duplicate for the caller-provided sTitle.
	count := 0
	for _, c := range cols {
		if c == "sTitle" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("sTitle appears %d times", count)
	}
	if runner.lastParams["max"] != 5 {
		t.Errorf("max = %v", runner.lastParams["max"])
	}
}

func TestCaseService_Details(t *testing.T) {
	runner := replyWith(`{"cases":[{
		"ixBug": 61331,
		"sTitle": "Checkout crash",
		"sProject": "Storefront",
		"fOpen": true,
		"sArea": "Payments",
		"ixStatus": 17,
		"ixPriority": 2,
		"ixCategory": 1,
		"events": [
			"",
			{"evt": 1, "evtDescription": "Opened by Alice", "dt": "2024-03-01T09:00:00Z",
			 "ixPerson": 4, "sPerson": "Alice", "s": "initial report"},
			{"evt": 42, "evtDescription": "Something new", "dt": "2024-03-02T10:00:00Z",
			 "ixPerson": 5, "sPerson": "Bob", "s": ""}
		]
	}]}`)
	svc := testClient(runner).Cases()

	details, err := svc.Details(context.Background(), 61331)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}

	if runner.lastCmd != "search" || runner.lastParams["q"] != "61331" {
		t.Errorf("cmd = %q, q = %v", runner.lastCmd, runner.lastParams["q"])
	}
	if details.CaseID != 61331 || details.Title != "Checkout crash" {
		t.Errorf("details = %+v", details)
	}
	if details.StatusID != 17 || details.Priority != PriorityMuyImportante || details.Category != CategoryBug {
		t.Errorf("status/priority/category = %d/%v/%v", details.StatusID, details.Priority, details.Category)
	}
	// The bare-string event entry is dropped, the unknown type kept.
	if len(details.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(details.Events))
	}
	if details.Events[0].Type != EventOpened || details.Events[1].Type != EventUnknown {
		t.Errorf("event types = %v, %v", details.Events[0].Type, details.Events[1].Type)
	}
}

func TestCaseService_DetailsDefaultColumns(t *testing.T) {
	runner := replyWith(`{"cases":[{"ixBug":1,"events":[]}]}`)
	svc := testClient(runner).Cases()

	if _, err := svc.Details(context.Background(), 1); err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	cols := colsOf(runner.lastParams)
	for _, want := range []string{"ixBug", "sTitle", "events", "sProject", "sArea", "ixPriority", "ixStatus", "ixCategory", "fOpen"} {
		if !containsCol(cols, want) {
			t.Errorf("default cols %v missing %s", cols, want)
		}
	}
}

func TestCaseService_DetailsNotFound(t *testing.T) {
	svc := testClient(replyWith(`{"cases":[]}`)).Cases()

	_, err := svc.Details(context.Background(), 999)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Details() err = %v", err)
	}
}

func TestCaseService_Create(t *testing.T) {
	runner := replyWith(`{"case":{"ixBug":4242}}`)
	svc := testClient(runner).Cases()

	id, err := svc.Create(context.Background(), NewCase{
		Title:       "New widget",
		Description: "As discussed",
		Project:     "Storefront",
		Category:    CategoryFeature,
		Priority:    3,
		Tags:        []string{"widget", "q3"},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id != 4242 {
		t.Errorf("id = %d", id)
	}

	p := runner.lastParams
	if runner.lastCmd != "new" || p["sTitle"] != "New widget" || p["sEvent"] != "As discussed" {
		t.Errorf("cmd/params = %q %v", runner.lastCmd, p)
	}
	if p["ixCategory"] != 2 {
		t.Errorf("ixCategory = %v", p["ixCategory"])
	}
	if p["sTags"] != "widget,q3" {
		t.Errorf("sTags = %v", p["sTags"])
	}
	if _, ok := p["ixProject"]; ok {
		t.Error("zero ixProject was sent")
	}
}

func TestCaseService_CreateMissingID(t *testing.T) {
	svc := testClient(replyWith(`{"case":{}}`)).Cases()

	_, err := svc.Create(context.Background(), NewCase{Title: "x", Description: "y"})
	if err == nil || !strings.Contains(err.Error(), "case id") {
		t.Errorf("Create() err = %v", err)
	}
}

func TestCaseService_LifecycleCommands(t *testing.T) {
	runner := replyWith(`{"case":{"ixBug":7}}`)
	svc := testClient(runner).Cases()
	ctx := context.Background()

	if err := svc.Edit(ctx, EditCase{CaseID: 7, Title: "renamed"}); err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	if runner.lastCmd != "edit" || runner.lastParams["sTitle"] != "renamed" {
		t.Errorf("edit: cmd = %q params = %v", runner.lastCmd, runner.lastParams)
	}

	if err := svc.Assign(ctx, 7, 12, "over to you"); err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if runner.lastCmd != "assign" || runner.lastParams["ixPersonAssignedTo"] != uint64(12) {
		t.Errorf("assign: cmd = %q params = %v", runner.lastCmd, runner.lastParams)
	}

	if err := svc.Resolve(ctx, ResolveCase{CaseID: 7, Comment: "fixed"}); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if runner.lastCmd != "resolve" || runner.lastParams["sEvent"] != "fixed" {
		t.Errorf("resolve: cmd = %q params = %v", runner.lastCmd, runner.lastParams)
	}
	if _, ok := runner.lastParams["ixStatus"]; ok {
		t.Error("zero ixStatus was sent")
	}

	if err := svc.Reactivate(ctx, 7, 0, "still broken"); err != nil {
		t.Fatalf("Reactivate() error: %v", err)
	}
	if runner.lastCmd != "reactivate" {
		t.Errorf("reactivate: cmd = %q", runner.lastCmd)
	}

	if err := svc.Close(ctx, 7, ""); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if runner.lastCmd != "close" || runner.lastParams["ixBug"] != uint64(7) {
		t.Errorf("close: cmd = %q params = %v", runner.lastCmd, runner.lastParams)
	}
	if _, ok := runner.lastParams["sEvent"]; ok {
		t.Error("empty comment was sent")
	}
}
