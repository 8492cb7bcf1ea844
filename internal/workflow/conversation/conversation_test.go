package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReasoner struct {
	reasonFunc func(ctx context.Context, input string, prior History) (string, error)
	calls      int
}

func (m *mockReasoner) Reason(ctx context.Context, input string, prior History) (string, error) {
	m.calls++
	return m.reasonFunc(ctx, input, prior)
}

func replying(text string) *mockReasoner {
	return &mockReasoner{reasonFunc: func(ctx context.Context, input string, prior History) (string, error) {
		return text, nil
	}}
}

func TestStep_AppendsOneAgentMessage(t *testing.T) {
	var gotInput string
	var gotPrior History
	r := &mockReasoner{reasonFunc: func(ctx context.Context, input string, prior History) (string, error) {
		gotInput, gotPrior = input, prior
		return "Looks fine.", nil
	}}
	history := History{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAgent, Content: "answer"},
		{Role: RoleUser, Content: "Review my changes"},
	}

	next, err := Step(context.Background(), r, history)

	require.NoError(t, err)
	want := History{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAgent, Content: "answer"},
		{Role: RoleUser, Content: "Review my changes"},
		{Role: RoleAgent, Content: "Looks fine."},
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Review my changes", gotInput)
	assert.Equal(t, history[:2], gotPrior)
	assert.Len(t, history, 3, "caller's history is untouched")
}

func TestStep_NoUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		history History
	}{
		{"empty", nil},
		{"last is agent", History{{Role: RoleUser, Content: "q"}, {Role: RoleAgent, Content: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := replying("unused")

			next, err := Step(context.Background(), r, tt.history)

			require.NoError(t, err)
			assert.Equal(t, tt.history, next)
			assert.Zero(t, r.calls)
		})
	}
}

func TestStep_EmptyReplyLeavesHistory(t *testing.T) {
	history := History{{Role: RoleUser, Content: "q"}}

	next, err := Step(context.Background(), replying(""), history)

	require.NoError(t, err)
	assert.Equal(t, history, next)
}

func TestStep_ReasonerError(t *testing.T) {
	boom := errors.New("provider down")
	r := &mockReasoner{reasonFunc: func(ctx context.Context, input string, prior History) (string, error) {
		return "", boom
	}}
	history := History{{Role: RoleUser, Content: "q"}}

	next, err := Step(context.Background(), r, history)

	assert.ErrorIs(t, err, ErrReasoning)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, history, next)
}

func TestStep_PriorCannotAliasNewMessage(t *testing.T) {
	backing := make(History, 1, 8)
	backing[0] = Message{Role: RoleUser, Content: "q"}

	r := &mockReasoner{reasonFunc: func(ctx context.Context, input string, prior History) (string, error) {
		_ = append(prior, Message{Role: RoleAgent, Content: "scribble"})
		return "reply", nil
	}}

	next, err := Step(context.Background(), r, backing)

	require.NoError(t, err)
	assert.Empty(t, backing[:2][1].Content, "reasoner wrote into the caller's spare capacity")
	assert.Equal(t, "reply", next[1].Content)
}

func TestLoop_RejectsReentry(t *testing.T) {
	var loop *Loop
	var inner error
	r := &mockReasoner{reasonFunc: func(ctx context.Context, input string, prior History) (string, error) {
		_, inner = loop.Step(ctx, History{{Role: RoleUser, Content: "nested"}})
		return "outer", nil
	}}
	loop = NewLoop(r)

	next, err := loop.Step(context.Background(), History{{Role: RoleUser, Content: "q"}})

	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrTurnInProgress)
	assert.Len(t, next, 2)
	assert.Equal(t, 1, r.calls)
}

func TestHistory_Texts(t *testing.T) {
	h := History{{Role: RoleUser, Content: "a"}, {Role: RoleAgent, Content: "b"}}
	assert.Equal(t, []string{"a", "b"}, h.Texts())
}
