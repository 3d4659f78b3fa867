package sutra

import (
	"errors"
	"io/fs"
	"os"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
)

// LoadFile reads and decodes the sutra at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperrors.NotFoundError{Resource: "file", ID: path, Err: err}
		}
		return nil, &apperrors.IOError{Operation: "read", Path: path, Err: err}
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, &apperrors.ParseError{Format: "JSON", Path: path, Err: err}
	}
	return doc, nil
}

// SaveFile encodes doc and overwrites path.
func SaveFile(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &apperrors.IOError{Operation: "write", Path: path, Err: err}
	}
	return nil
}
