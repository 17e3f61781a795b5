package agendaloader

import (
	"agendareminder/internal/core/domain/event"

	"gopkg.in/yaml.v3"
)

func parseYAML(data []byte) (event.Agenda, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return event.Agenda{}, err
	}
	return doc.agenda(), nil
}
