package crud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campus/backend/internal/domain/shared"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// decodePatch parses an RFC 6902 document and rewrites every path to the JSON name
// of the attribute it addresses, so "/Name", "/name" and "/NAME" are equivalent.
func decodePatch(fields shared.FieldSet, document []byte) (jsonpatch.Patch, error) {
	trimmed := bytes.TrimSpace(document)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, shared.ErrPatchMissing
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var ops []map[string]any
	if err := dec.Decode(&ops); err != nil {
		return nil, shared.NewPatchError("Patch document must be a JSON array of operations")
	}

	for i, op := range ops {
		for _, key := range []string{"path", "from"} {
			raw, ok := op[key]
			if !ok {
				continue
			}
			path, ok := raw.(string)
			if !ok {
				return nil, shared.NewPatchError(fmt.Sprintf("Operation %d: '%s' must be a string", i, key))
			}
			resolved, err := resolvePath(fields, path)
			if err != nil {
				return nil, err
			}
			op[key] = resolved
		}
	}

	normalized, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch document: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(normalized)
	if err != nil {
		return nil, shared.NewPatchError(fmt.Sprintf("Invalid patch document: %v", err))
	}
	return patch, nil
}

// resolvePath maps a JSON pointer naming a top-level attribute onto its JSON name
func resolvePath(fields shared.FieldSet, path string) (string, error) {
	if !strings.HasPrefix(path, "/") || len(path) == 1 {
		return "", shared.NewPatchError(fmt.Sprintf("Invalid patch path '%s'", path))
	}
	segments := strings.Split(path[1:], "/")
	f, ok := fields.Lookup(pointerUnescaper.Replace(segments[0]))
	if !ok {
		return "", shared.NewPatchError(fmt.Sprintf("Unknown patch path '%s'", path))
	}
	if len(segments) > 1 {
		return "", shared.NewPatchError(fmt.Sprintf("Patch path '%s' must address a single attribute", path))
	}
	return "/" + f.JSONName, nil
}

// applyPatch applies patch to the JSON form of stored and decodes the result into patched
func applyPatch[T any](patch jsonpatch.Patch, stored, patched *T) error {
	doc, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode entity: %w", err)
	}
	out, err := patch.Apply(doc)
	if err != nil {
		return shared.NewPatchError(fmt.Sprintf("Patch could not be applied: %v", err))
	}
	if err := json.Unmarshal(out, patched); err != nil {
		return shared.NewPatchError(fmt.Sprintf("Patched entity is invalid: %v", err))
	}
	return nil
}
