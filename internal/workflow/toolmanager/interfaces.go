package toolmanager

import (
	"context"

	"github.com/Cyclone1070/codereview/internal/tool"
)

// toolImpl defines the interface for individual tools.
// Request structs should implement fmt.Stringer for display.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Input returns a pointer to a fresh input struct (e.g., &ReadFileRequest{}).
	Input() any

	// Execute runs the tool with typed input. Failures the model should see
	// are reported in the Result; the error is reserved for cancellation.
	Execute(ctx context.Context, input any) (tool.Result, error)
}
