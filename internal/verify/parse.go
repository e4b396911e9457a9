package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// decodeStrict parses an oracle reply as exactly one JSON value. The oracle
// is instructed to return only the structured shape, so any free text around
// the value is a protocol violation, not something to strip.
func decodeStrict(reply string, v any) error {
	dec := json.NewDecoder(strings.NewReader(reply))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parse oracle reply: %w", err)
	}

	// Only whitespace may follow the value
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return fmt.Errorf("oracle reply has trailing content after JSON value")
	}

	return nil
}

// decodeStrictFields parses an oracle reply as exactly one JSON object and
// requires every named field to be present before unmarshaling into v.
// A field the oracle omitted is a stage failure, not something to default;
// a field present with a null value is left to the caller to normalize.
func decodeStrictFields(reply string, v any, required ...string) error {
	var fields map[string]json.RawMessage
	if err := decodeStrict(reply, &fields); err != nil {
		return err
	}

	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("oracle reply missing required field %q", name)
		}
	}

	if err := json.Unmarshal([]byte(reply), v); err != nil {
		return fmt.Errorf("parse oracle reply: %w", err)
	}

	return nil
}
