package registry

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/jonathan/jobboard-finder/internal/schemas"
)

// File is the on-disk format of a vendors file.
type File struct {
	Replace bool   `json:"replace,omitempty"`
	Vendors []Spec `json:"vendors"`
}

// LoadFile reads a vendors file and returns a registry built from it.
// Unless the file sets "replace", its vendors are appended after the built-ins.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, data)
}

// Parse builds a registry from vendors file content. path is used in errors only.
func Parse(path string, data []byte) (*Registry, error) {
	if err := schemas.ValidateVendors(data); err != nil {
		var docErr *schemas.DocumentError
		if errors.As(err, &docErr) {
			return nil, &FileError{Path: path, Message: "failed to parse JSON", Cause: err}
		}
		return nil, &FileError{Path: path, Message: "schema validation failed", Cause: err}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &FileError{Path: path, Message: "failed to parse JSON", Cause: err}
	}

	specs := f.Vendors
	if !f.Replace {
		specs = append(BuiltinSpecs(), f.Vendors...)
	}

	r, err := New(specs)
	if err != nil {
		return nil, &FileError{Path: path, Message: "invalid vendors", Cause: err}
	}
	return r, nil
}
