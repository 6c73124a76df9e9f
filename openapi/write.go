package openapi

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// WriteJSON writes s to w as indented JSON.
func WriteJSON(w io.Writer, s *openapi3.T) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// WriteYAML writes s to w as YAML, keeping the key order of its JSON encoding.
func WriteYAML(w io.Writer, s *openapi3.T) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	// JSON is YAML; decoding into a node keeps key order.
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return err
	}
	blockStyle(&n)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&n); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles decoded from JSON so the
// encoder writes plain block YAML.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
