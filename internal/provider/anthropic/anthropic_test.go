package anthropic

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMessageClient struct {
	newFunc func(ctx context.Context, body anthropic.MessageNewParams) (*anthropic.Message, error)
	params  []anthropic.MessageNewParams
}

func (m *mockMessageClient) New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	m.params = append(m.params, body)
	return m.newFunc(ctx, body)
}

func TestGenerate_TextAndToolUse(t *testing.T) {
	mock := &mockMessageClient{newFunc: func(ctx context.Context, body anthropic.MessageNewParams) (*anthropic.Message, error) {
		return &anthropic.Message{
			StopReason: anthropic.StopReasonToolUse,
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: "Let me look."},
				{Type: "tool_use", ID: "toolu_1", Name: "git_diff", Input: json.RawMessage(`{"staged":true}`)},
			},
		}, nil
	}}
	p := New(mock, provider.Options{Model: "claude-sonnet-4-5", MaxOutputTokens: 1024})

	msg, err := p.Generate(context.Background(), []provider.Message{
		{Role: provider.RoleSystem, Content: "sys"},
		{Role: provider.RoleUser, Content: "review"},
	}, []tool.Declaration{{Name: "git_diff", Description: "Show changes"}})

	require.NoError(t, err)
	assert.Equal(t, "Let me look.", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, provider.ToolCall{ID: "toolu_1", Name: "git_diff", Args: map[string]any{"staged": true}}, msg.ToolCalls[0])

	sent := mock.params[0]
	assert.Equal(t, anthropic.Model("claude-sonnet-4-5"), sent.Model)
	assert.Equal(t, int64(1024), sent.MaxTokens)
	require.Len(t, sent.System, 1)
	assert.Equal(t, "sys", sent.System[0].Text)
	require.Len(t, sent.Messages, 1)
	require.Len(t, sent.Tools, 1)
	assert.Equal(t, "git_diff", sent.Tools[0].OfTool.Name)
}

func TestToMessageParams_GroupsToolResults(t *testing.T) {
	params := toMessageParams([]provider.Message{
		{Role: provider.RoleUser, Content: "review"},
		{Role: provider.RoleAssistant, ToolCalls: []provider.ToolCall{
			{ID: "a", Name: "git_status"},
			{ID: "b", Name: "git_diff"},
		}},
		{Role: provider.RoleTool, ToolCallID: "a", Content: "clean"},
		{Role: provider.RoleTool, ToolCallID: "b", Content: ""},
		{Role: provider.RoleAssistant, Content: "done"},
	})

	require.Len(t, params, 4)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params[1].Role)
	require.Len(t, params[1].Content, 2)
	assert.Equal(t, map[string]any{}, params[1].Content[0].OfToolUse.Input)

	assert.Equal(t, anthropic.MessageParamRoleUser, params[2].Role)
	require.Len(t, params[2].Content, 2)
	assert.Equal(t, "b", params[2].Content[1].OfToolResult.ToolUseID)
}

func TestFromMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *anthropic.Message
		wantErr error
	}{
		{"nil", nil, provider.ErrEmptyResponse},
		{"max tokens", &anthropic.Message{StopReason: anthropic.StopReasonMaxTokens}, provider.ErrContextLengthExceeded},
		{"refusal", &anthropic.Message{StopReason: anthropic.StopReasonRefusal}, provider.ErrContentBlocked},
		{"bad input", &anthropic.Message{Content: []anthropic.ContentBlockUnion{
			{Type: "tool_use", ID: "x", Name: "read_file", Input: json.RawMessage(`[1,2`)},
		}}, provider.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromMessage(tt.resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		status    int
		want      error
		retryable bool
	}{
		{401, provider.ErrAuthentication, false},
		{400, provider.ErrInvalidRequest, false},
		{429, provider.ErrRateLimit, true},
		{503, provider.ErrServiceUnavailable, true},
		{529, provider.ErrServiceUnavailable, true},
	}

	for _, tt := range tests {
		err := mapError(&anthropic.Error{StatusCode: tt.status})
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		assert.Equal(t, tt.retryable, provider.IsRetryable(err), "status %d", tt.status)
	}

	assert.ErrorIs(t, mapError(context.DeadlineExceeded), context.DeadlineExceeded)
}
