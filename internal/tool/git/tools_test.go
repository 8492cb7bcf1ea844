package git

import (
	"context"
	"testing"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/Cyclone1070/codereview/internal/tool/service/executor"
	"github.com/Cyclone1070/codereview/internal/tool/service/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRunner() (*Runner, *mockExecutor) {
	mock := &mockExecutor{runFunc: func(ctx context.Context, c executor.Command) (*executor.Result, error) {
		return &executor.Result{Stdout: "ok\n"}, nil
	}}
	return NewRunner(mock, config.DefaultConfig(), "/repo"), mock
}

func TestStatusTool(t *testing.T) {
	runner, mock := newMockRunner()
	st := NewStatusTool(runner)

	assert.Equal(t, "git_status", st.Name())
	assert.Empty(t, st.Declaration().Parameters.Required)

	res, err := st.Execute(context.Background(), st.Input())

	require.NoError(t, err)
	assert.Equal(t, "ok\n", res.Text())
	require.Len(t, mock.calls, 1)
	assert.Equal(t, []string{"git", "status"}, mock.calls[0].Args)
}

func TestDiffTool_Args(t *testing.T) {
	tests := []struct {
		name     string
		req      DiffRequest
		wantArgs []string
		display  string
	}{
		{"default", DiffRequest{}, []string{"git", "diff"}, "git diff"},
		{"staged", DiffRequest{Staged: true}, []string{"git", "diff", "--cached"}, "git diff --cached"},
		{"path", DiffRequest{Path: "internal/app.go"}, []string{"git", "diff", "--", "internal/app.go"}, "git diff -- internal/app.go"},
		{"absolute path inside", DiffRequest{Path: "/repo/cmd"}, []string{"git", "diff", "--", "cmd"}, "git diff -- /repo/cmd"},
		{"root path", DiffRequest{Path: "."}, []string{"git", "diff", "--", "."}, "git diff -- ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, mock := newMockRunner()
			dt := NewDiffTool(runner, path.NewResolver("/repo"))
			req := tt.req

			res, err := dt.Execute(context.Background(), &req)

			require.NoError(t, err)
			assert.False(t, res.IsErr())
			require.Len(t, mock.calls, 1)
			assert.Equal(t, tt.wantArgs, mock.calls[0].Args)
			assert.Equal(t, tt.display, req.String())
		})
	}
}

func TestDiffTool_PathOutsideWorkspace(t *testing.T) {
	runner, mock := newMockRunner()
	dt := NewDiffTool(runner, path.NewResolver("/repo"))

	res, err := dt.Execute(context.Background(), &DiffRequest{Path: "../elsewhere"})

	require.NoError(t, err)
	assert.True(t, res.IsErr())
	assert.Contains(t, res.Text(), "outside workspace")
	assert.Empty(t, mock.calls)
}

func TestTools_CancelledContext(t *testing.T) {
	runner, _ := newMockRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatusTool(runner).Execute(ctx, &StatusRequest{})

	assert.ErrorIs(t, err, context.Canceled)
}
