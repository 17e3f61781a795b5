package agendaloader

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// flexibleString accepts any JSON or YAML scalar. A malformed value of one
// event must not make the whole agenda unreadable.
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexibleString(str)
		return nil
	}
	*s = flexibleString(data)
	return nil
}

func (s *flexibleString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		*s = ""
		return nil
	}
	*s = flexibleString(node.Value)
	return nil
}
