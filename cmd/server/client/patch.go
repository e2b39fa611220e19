package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/KirkDiggler/gurps-api/internal/engine"
)

// parseAssignments turns key=value arguments into a patch. Values that are
// valid JSON (numbers, booleans, objects) are used as-is; anything else is
// taken as a string, so name=Sir Anselm works without quoting.
func parseAssignments(args []string) (*engine.Patch, error) {
	fields := make(map[string]json.RawMessage, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}

		if json.Valid([]byte(value)) {
			fields[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = quoted
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return decodePatch(data)
}

// readPatchFile loads a JSON patch from disk
func readPatchFile(path string) (*engine.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch file: %w", err)
	}
	return decodePatch(data)
}

func decodePatch(data []byte) (*engine.Patch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	patch := &engine.Patch{}
	if err := dec.Decode(patch); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	return patch, nil
}
