package search

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/chainguard-dev/clog"
)

// searcher returns a text summary for a query.
type searcher interface {
	Search(ctx context.Context, q string) (string, error)
}

type SearchRequest struct {
	Query string `json:"query"`
}

func (r SearchRequest) String() string {
	return fmt.Sprintf("Searching %q", r.Query)
}

// SearchTool exposes a searcher to the model.
type SearchTool struct {
	searcher searcher
}

func NewSearchTool(s searcher) *SearchTool {
	return &SearchTool{searcher: s}
}

func (t *SearchTool) Name() string { return "search_solution" }

func (t *SearchTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Search the internet for code solutions and documentation",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"query": {
					Type:        tool.TypeString,
					Description: "What to search for",
				},
			},
			Required: []string{"query"},
		},
	}
}

func (t *SearchTool) Input() any { return &SearchRequest{} }

func (t *SearchTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*SearchRequest)
	if !ok {
		return tool.Result{}, fmt.Errorf("search_solution: unexpected input %T", input)
	}

	summary, err := t.searcher.Search(ctx, req.Query)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return tool.Result{}, ctxErr
	}
	if err != nil {
		clog.FromContext(ctx).With("error", err).Warn("search failed")
		return tool.Err(err.Error()), nil
	}
	return tool.Ok(summary), nil
}
