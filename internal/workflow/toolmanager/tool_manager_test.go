package toolmanager

import (
	"context"
	"testing"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInput struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func (m *mockInput) String() string { return m.Value }

type mockTool struct {
	name        string
	declaration tool.Declaration
	executeFunc func(ctx context.Context, input any) (tool.Result, error)
}

func (m *mockTool) Name() string                  { return m.name }
func (m *mockTool) Declaration() tool.Declaration { return m.declaration }
func (m *mockTool) Input() any                    { return &mockInput{} }
func (m *mockTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, input)
	}
	return tool.Ok("ok"), nil
}

func named(name string) *mockTool {
	return &mockTool{name: name, declaration: tool.Declaration{Name: name}}
}

func withRequired(name string, required ...string) *mockTool {
	return &mockTool{name: name, declaration: tool.Declaration{
		Name: name,
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"value": {Type: tool.TypeString},
				"count": {Type: tool.TypeInteger},
			},
			Required: required,
		},
	}}
}

func TestNewToolManager_PreservesOrder(t *testing.T) {
	tm, err := NewToolManager(named("z"), named("a"), named("m"))
	require.NoError(t, err)

	decls := tm.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, "z", decls[0].Name)
	assert.Equal(t, "a", decls[1].Name)
	assert.Equal(t, "m", decls[2].Name)
	assert.Equal(t, []string{"z", "a", "m"}, tm.Names())
}

func TestRegister_DuplicateNameRejected(t *testing.T) {
	tm, err := NewToolManager()
	require.NoError(t, err)

	first := &mockTool{name: "x", declaration: tool.Declaration{Name: "x", Description: "v1"}}
	second := &mockTool{name: "x", declaration: tool.Declaration{Name: "x", Description: "v2"}}

	require.NoError(t, tm.Register(first))
	err = tm.Register(second)

	assert.ErrorIs(t, err, ErrDuplicateTool)
	decls := tm.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "v1", decls[0].Description)
}

func TestNewToolManager_Errors(t *testing.T) {
	_, err := NewToolManager(named("x"), named("x"))
	assert.ErrorIs(t, err, ErrDuplicateTool)

	_, err = NewToolManager(named(""))
	assert.ErrorIs(t, err, ErrEmptyToolName)
}

func TestExecute_UnknownTool_ReturnsMessageToLLM(t *testing.T) {
	tm, _ := NewToolManager(named("git_status"), named("git_diff"))
	events := make(chan workflow.Event, 4)

	res, err := tm.Execute(context.Background(), provider.ToolCall{ID: "tc-123", Name: "unknown"}, events)

	require.NoError(t, err)
	assert.Equal(t, provider.RoleTool, res.Role)
	assert.Equal(t, "tc-123", res.ToolCallID)
	assert.Contains(t, res.Content, `Error: tool "unknown" does not exist`)
	assert.Contains(t, res.Content, "git_status, git_diff")

	assert.IsType(t, workflow.ToolStartEvent{}, <-events)
	end := (<-events).(workflow.ToolEndEvent)
	assert.Equal(t, tool.ErrorDisplay("Invalid tool request"), end.Display)
}

func TestExecute_DecodesArguments(t *testing.T) {
	var captured *mockInput
	mt := withRequired("test", "value")
	mt.executeFunc = func(ctx context.Context, input any) (tool.Result, error) {
		captured = input.(*mockInput)
		return tool.Ok("done"), nil
	}
	tm, _ := NewToolManager(mt)

	// JSON numbers arrive as float64.
	res, err := tm.Execute(context.Background(), provider.ToolCall{
		ID:   "tc-456",
		Name: "test",
		Args: map[string]any{"value": "hello", "count": float64(3)},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "hello", captured.Value)
	assert.Equal(t, 3, captured.Count)
	assert.Equal(t, "tc-456", res.ToolCallID)
	assert.Equal(t, "test", res.Name)
	assert.Equal(t, "done", res.Content)
}

func TestExecute_ArityMismatch_ReturnsMessageToLLM(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"missing required", map[string]any{"count": 1}, "missing required parameter(s): value"},
		{"unknown key", map[string]any{"value": "a", "extra": true}, "extra"},
		{"wrong type", map[string]any{"value": "a", "count": map[string]any{"n": 1}}, "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mt := withRequired("test", "value")
			mt.executeFunc = func(ctx context.Context, input any) (tool.Result, error) {
				called = true
				return tool.Ok(""), nil
			}
			tm, _ := NewToolManager(mt)

			res, err := tm.Execute(context.Background(), provider.ToolCall{ID: "c", Name: "test", Args: tt.args}, nil)

			require.NoError(t, err)
			assert.False(t, called)
			assert.Contains(t, res.Content, `Error: invalid arguments for tool "test"`)
			assert.Contains(t, res.Content, tt.wantMsg)
			assert.Contains(t, res.Content, "Expected schema")
		})
	}
}

func TestExecute_NoArgsTool(t *testing.T) {
	tm, _ := NewToolManager(named("git_status"))

	res, err := tm.Execute(context.Background(), provider.ToolCall{ID: "c", Name: "git_status"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", res.Content)
}

func TestExecute_ErrResultRenderedForModel(t *testing.T) {
	mt := named("git_diff")
	mt.executeFunc = func(ctx context.Context, input any) (tool.Result, error) {
		return tool.Err("fatal: not a git repository"), nil
	}
	tm, _ := NewToolManager(mt)
	events := make(chan workflow.Event, 4)

	res, err := tm.Execute(context.Background(), provider.ToolCall{ID: "c", Name: "git_diff"}, events)

	require.NoError(t, err)
	assert.Equal(t, "Error: fatal: not a git repository", res.Content)

	<-events
	end := (<-events).(workflow.ToolEndEvent)
	assert.IsType(t, tool.ErrorDisplay(""), end.Display)
}

func TestExecute_EmitsToolEvents(t *testing.T) {
	mt := withRequired("test")
	mt.executeFunc = func(ctx context.Context, input any) (tool.Result, error) {
		return tool.Ok("result"), nil
	}
	tm, _ := NewToolManager(mt)
	events := make(chan workflow.Event, 10)

	_, err := tm.Execute(context.Background(), provider.ToolCall{Name: "test", Args: map[string]any{"value": "hello"}}, events)
	require.NoError(t, err)

	start, ok := (<-events).(workflow.ToolStartEvent)
	require.True(t, ok)
	assert.Equal(t, "test", start.ToolName)
	assert.Equal(t, "hello", start.RequestDisplay)

	end, ok := (<-events).(workflow.ToolEndEvent)
	require.True(t, ok)
	assert.Equal(t, "test", end.ToolName)
	assert.Equal(t, tool.StringDisplay("result"), end.Display)
}

func TestExecute_ToolErrorPropagates(t *testing.T) {
	mt := named("slow")
	mt.executeFunc = func(ctx context.Context, input any) (tool.Result, error) {
		return tool.Result{}, context.Canceled
	}
	tm, _ := NewToolManager(mt)

	_, err := tm.Execute(context.Background(), provider.ToolCall{Name: "slow"}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
