package fogbugz

import (
	"context"
	"encoding/json"
)

// mockRunner records the last command sent and replies with canned
// data.
type mockRunner struct {
	runFn func(ctx context.Context, cmd string, params map[string]any) (json.RawMessage, error)

	lastCmd    string
	lastParams map[string]any
}

func (m *mockRunner) Run(ctx context.Context, cmd string, params map[string]any) (json.RawMessage, error) {
	m.lastCmd = cmd
	m.lastParams = params
	if m.runFn != nil {
		return m.runFn(ctx, cmd, params)
	}
	return json.RawMessage(`{}`), nil
}

// replyWith builds a runner returning a fixed data payload.
func replyWith(data string) *mockRunner {
	return &mockRunner{
		runFn: func(context.Context, string, map[string]any) (json.RawMessage, error) {
			return json.RawMessage(data), nil
		},
	}
}

func testClient(runner commandRunner) *Client {
	return &Client{runner: runner}
}

// colsOf extracts the cols parameter sent with the last command.
func colsOf(params map[string]any) []string {
	cols, _ := params["cols"].([]string)
	return cols
}

func containsCol(cols []string, want string) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}
