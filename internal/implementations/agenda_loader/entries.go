package agendaloader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// entries decodes every event on its own. An event that is not an object
// becomes an entry without a start and is dropped by the window filter.
type entries []entry

func (es *entries) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	decoded := make(entries, 0, len(raws))
	for _, raw := range raws {
		var en entry
		if err := json.Unmarshal(raw, &en); err != nil {
			en = entry{}
		}
		decoded = append(decoded, en)
	}
	*es = decoded
	return nil
}

func (es *entries) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*es = nil
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: events must be a list", node.Line)
	}
	decoded := make(entries, 0, len(node.Content))
	for _, child := range node.Content {
		var en entry
		if err := child.Decode(&en); err != nil {
			en = entry{}
		}
		decoded = append(decoded, en)
	}
	*es = decoded
	return nil
}
