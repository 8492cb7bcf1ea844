package file

import "fmt"

// -- Read File --

type ReadFileRequest struct {
	FilePath string `json:"file_path"`
}

func (r ReadFileRequest) String() string {
	return "Reading " + r.FilePath
}

// -- Write File --

type WriteFileRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

func (r WriteFileRequest) String() string {
	return fmt.Sprintf("Writing %s (%d bytes)", r.FilePath, len(r.Content))
}
