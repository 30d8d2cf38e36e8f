package fixture

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Kind identifies how fixture content was produced.
type Kind int

// Content kinds.
const (
	KindRaw Kind = iota
	KindJSON
	KindYAML
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	case KindCustom:
		return "custom"
	default:
		return "raw"
	}
}

// Content is a loaded fixture.
type Content struct {
	// Path is the file the content was read from.
	Path string
	// Kind tells whether Value holds decoded data.
	Kind Kind
	// Value is the decoded structure. It is nil for KindRaw.
	Value any
	// Raw is the file content as read from disk.
	Raw []byte
}

// Structured reports whether the content was decoded.
func (c Content) Structured() bool {
	return c.Kind != KindRaw
}

// DecodeFunc turns file bytes into a structured value.
type DecodeFunc func(data []byte) (any, error)

type decoder struct {
	kind   Kind
	decode DecodeFunc
}

// DecodeJSON decodes JSON into generic values. Empty input is an error.
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeYAML decodes a single YAML document. Empty input is an error,
// matching DecodeJSON.
func DecodeYAML(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadJSONFile reads the file at path and decodes it as JSON.
func ReadJSONFile(path string) (any, error) {
	c, err := readDecoded(path, decoder{kind: KindJSON, decode: DecodeJSON})
	if err != nil {
		return nil, err
	}
	return c.Value, nil
}
