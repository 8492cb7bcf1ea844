package file

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/tool"
)

// ReadFileTool exposes Accessor.Read.
type ReadFileTool struct {
	accessor *Accessor
}

func NewReadFileTool(accessor *Accessor) *ReadFileTool {
	return &ReadFileTool{accessor: accessor}
}

func (t *ReadFileTool) Name() string { return "read_file" }

func (t *ReadFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Read the content of a file in the repository",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"file_path": {
					Type:        tool.TypeString,
					Description: "Path of the file, relative to the repository root",
				},
			},
			Required: []string{"file_path"},
		},
	}
}

func (t *ReadFileTool) Input() any { return &ReadFileRequest{} }

func (t *ReadFileTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*ReadFileRequest)
	if !ok {
		return tool.Result{}, fmt.Errorf("read_file: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return tool.Result{}, err
	}
	return t.accessor.Read(ctx, req.FilePath), nil
}

// WriteFileTool exposes Accessor.Write.
type WriteFileTool struct {
	accessor *Accessor
}

func NewWriteFileTool(accessor *Accessor) *WriteFileTool {
	return &WriteFileTool{accessor: accessor}
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Write content to a file in the repository",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"file_path": {
					Type:        tool.TypeString,
					Description: "Path of the file, relative to the repository root",
				},
				"content": {
					Type:        tool.TypeString,
					Description: "The complete new content of the file. Replaces everything in it.",
				},
			},
			Required: []string{"file_path", "content"},
		},
	}
}

func (t *WriteFileTool) Input() any { return &WriteFileRequest{} }

func (t *WriteFileTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*WriteFileRequest)
	if !ok {
		return tool.Result{}, fmt.Errorf("write_file: unexpected input %T", input)
	}
	if err := ctx.Err(); err != nil {
		return tool.Result{}, err
	}
	return t.accessor.Write(ctx, req.FilePath, req.Content), nil
}
