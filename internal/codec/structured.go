package codec

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

func encodeJSON(c *gurps.Character) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// decodeJSON unmarshals over c, so absent keys keep their defaults
func decodeJSON(data []byte, c *gurps.Character) error {
	return json.Unmarshal(data, c)
}

func encodeYAML(c *gurps.Character) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeYAML(data []byte, c *gurps.Character) error {
	return yaml.Unmarshal(data, c)
}
