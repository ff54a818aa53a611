package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kilianp07/eventplan/core/model"
)

// FileExtension is the conventional suffix of saved documents.
const FileExtension = ".eventplan.json"

// Serialize encodes p as indented JSON.
func Serialize(p model.Project) ([]byte, error) {
	b, err := json.MarshalIndent(FromProject(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return b, nil
}

// Deserialize parses data and validates it. Parse failures and validation
// failures both surface as a *model.ValidationError.
func Deserialize(data []byte) (model.Project, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes and validates one document from r.
func Read(r io.Reader) (model.Project, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	verr := &model.ValidationError{}
	if err := dec.Decode(&doc); err != nil {
		if !recoverable(err, verr) {
			return model.Project{}, verr
		}
	}
	if dec.More() {
		verr.Add("", "unexpected data after document")
		return model.Project{}, verr
	}
	collect(&doc, verr)
	if verr.HasIssues() {
		return model.Project{}, verr
	}
	return toProject(&doc), nil
}

// Write serializes p to w followed by a newline.
func Write(w io.Writer, p model.Project) error {
	b, err := Serialize(p)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// recoverable records a decode error as an issue. It returns true when the
// decoder finished the document and the remaining fields are worth checking:
// encoding/json keeps going after type mismatches and unknown fields.
func recoverable(err error, verr *model.ValidationError) bool {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		verr.Add(typeErr.Field, "must be of type "+jsonType(typeErr.Type.Kind().String()))
		return true
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		verr.Add(name, "unknown field")
		return true
	case errors.Is(err, io.EOF):
		verr.Add("", "document is empty")
	default:
		verr.Add("", "malformed JSON: "+err.Error())
	}
	return false
}

func jsonType(kind string) string {
	switch kind {
	case "string":
		return "string"
	case "float64", "float32", "int", "int64":
		return "number"
	case "bool":
		return "boolean"
	case "slice":
		return "array"
	case "struct", "ptr":
		return "object"
	default:
		return kind
	}
}
