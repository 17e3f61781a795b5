package agendaloader

import (
	"agendareminder/internal/core/domain/event"
	"encoding/json"
)

func parseJSON(data []byte) (event.Agenda, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return event.Agenda{}, err
	}
	return doc.agenda(), nil
}
