// Package content classifies raw file bytes before they are handed to the model.
package content

import (
	"errors"
	"unicode/utf8"
)

// binarySampleSize matches git's heuristic: a NUL in the first 8000 bytes marks binary data.
const binarySampleSize = 8000

var (
	ErrBinary      = errors.New("content is binary")
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// IsBinaryContent checks if content bytes contain binary data by looking for null bytes.
// UTF-16 and UTF-32 byte order marks are treated as text.
func IsBinaryContent(content []byte) bool {
	if hasWideBOM(content) {
		return false
	}

	sampleSize := min(len(content), binarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// CheckText returns nil when content can be returned to the model as a string:
// it must not look binary and must decode as UTF-8.
func CheckText(content []byte) error {
	if IsBinaryContent(content) {
		return ErrBinary
	}
	if hasWideBOM(content) {
		// Wide encodings are not decoded.
		return ErrInvalidUTF8
	}
	if !utf8.Valid(content) {
		return ErrInvalidUTF8
	}
	return nil
}

func hasWideBOM(content []byte) bool {
	if len(content) >= 4 {
		if (content[0] == 0xFF && content[1] == 0xFE && content[2] == 0x00 && content[3] == 0x00) ||
			(content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF) {
			return true
		}
	}
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return true
		}
	}
	return false
}
