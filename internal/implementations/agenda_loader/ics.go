package agendaloader

import (
	"agendareminder/internal/core/domain/event"
	"bytes"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

func parseICS(data []byte, loc *time.Location) (event.Agenda, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return event.Agenda{}, err
	}

	doc := document{}
	for _, prop := range cal.CalendarProperties {
		if strings.EqualFold(prop.IANAToken, "URL") {
			doc.Defaults.URL = flexibleString(prop.Value)
		}
	}

	for _, ve := range cal.Events() {
		en := entry{Start: flexibleString(icsStart(ve, loc))}
		if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
			en.ID = flexibleString(p.Value)
		}
		if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
			en.Title = flexibleString(unescapeText(p.Value))
		}
		if p := ve.GetProperty(ics.ComponentPropertyLocation); p != nil {
			en.Location = flexibleString(unescapeText(p.Value))
		}
		if p := ve.GetProperty("URL"); p != nil {
			en.URL = flexibleString(p.Value)
		}
		doc.Events = append(doc.Events, en)
	}
	return doc.agenda(), nil
}

// icsStart returns DTSTART as an RFC 3339 string, or the raw value when it
// cannot be interpreted (the event is then dropped by the window filter).
// Date-only and floating values are read in loc.
func icsStart(ve *ics.VEvent, loc *time.Location) string {
	prop := ve.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return ""
	}
	value := strings.TrimSpace(prop.Value)
	if !strings.Contains(value, "T") {
		if t, err := time.ParseInLocation("20060102", value, loc); err == nil {
			return t.Format(time.RFC3339)
		}
		return value
	}
	if !strings.HasSuffix(value, "Z") && len(prop.ICalParameters["TZID"]) == 0 {
		if t, err := time.ParseInLocation("20060102T150405", value, loc); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return value
	}
	return start.Format(time.RFC3339)
}

var textUnescaper = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ", `\\`, `\`)

func unescapeText(value string) string {
	return textUnescaper.Replace(value)
}
