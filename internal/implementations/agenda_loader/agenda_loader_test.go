package agendaloader

import (
	"agendareminder/internal/core/domain/event"
	"agendareminder/internal/core/domain/logging"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var Zone = mustLoadLocation("America/Campo_Grande")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func writeAgenda(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func load(t *testing.T, path string) (event.Agenda, error) {
	t.Helper()
	loader, err := New(logging.NewFakeLogger(), path, Zone)
	require.Nil(t, err)
	return loader.Load(context.Background())
}

func TestLoadJSON(t *testing.T) {
	path := writeAgenda(t, "agenda.json", `{
		"defaults": {"url": "https://example.org/agenda"},
		"events": [
			{"id": "E1", "start": "2024-06-10T15:00:00-04:00", "title": "Culto", "location": "Sede"},
			{"start": "2024-06-11T19:30:00-04:00", "title": "Ensaio", "url": "https://example.org/ensaio"},
			{"id": 42, "start": "2024-06-12T19:30:00-04:00"},
			{"id": "bad", "start": 12345},
			{"id": "missing"},
			{"id": "null", "start": null, "title": null}
		]
	}`)

	agenda, err := load(t, path)

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("https://example.org/agenda", agenda.DefaultURL)
	assert.Len(agenda.Events, 6)

	first := agenda.Events[0]
	assert.Equal("E1", first.ID.Value)
	assert.True(first.ID.IsPresent)
	assert.Equal("2024-06-10T15:00:00-04:00", first.Start)
	assert.Equal("Culto", first.Title.Value)
	assert.Equal("Sede", first.Location.Value)
	assert.False(first.URL.IsPresent)

	second := agenda.Events[1]
	assert.False(second.ID.IsPresent)
	assert.False(second.Location.IsPresent)
	assert.Equal("https://example.org/ensaio", second.URL.Value)

	assert.Equal("42", agenda.Events[2].ID.Value)
	assert.Equal("12345", agenda.Events[3].Start)
	assert.Equal("", agenda.Events[4].Start)
	assert.Equal("", agenda.Events[5].Start)
	assert.False(agenda.Events[5].Title.IsPresent)
}

func TestLoadKeepsValidEventsNextToMalformedOnes(t *testing.T) {
	cases := []struct {
		id      string
		name    string
		content string
	}{
		{
			id:   "json",
			name: "agenda.json",
			content: `{"events": [
				{"id": "E1", "start": "2024-06-10T15:00:00-04:00"},
				"garbage",
				42,
				["nested"],
				null,
				{"id": "E2", "start": "2024-06-11T19:30:00-04:00"}
			]}`,
		},
		{
			id:   "yaml",
			name: "agenda.yaml",
			content: `
events:
  - id: E1
    start: 2024-06-10T15:00:00-04:00
  - garbage
  - 42
  - [nested]
  - ~
  - id: E2
    start: 2024-06-11T19:30:00-04:00
`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			agenda, err := load(t, writeAgenda(t, testcase.name, testcase.content))

			assert := require.New(t)
			assert.Nil(err)
			assert.Len(agenda.Events, 6)
			for _, malformed := range agenda.Events[1:5] {
				assert.Equal("", malformed.Start)
				assert.False(malformed.ID.IsPresent)
			}

			now := time.Date(2024, 6, 10, 10, 0, 0, 0, Zone)
			selected := event.Select(agenda.Events, now, 7, Zone)
			assert.Len(selected, 2)
			assert.Equal("E1", selected[0].Record.ID.Value)
			assert.Equal("E2", selected[1].Record.ID.Value)
		})
	}
}

func TestLoadEventsThatAreNotAList(t *testing.T) {
	assert := require.New(t)

	_, err := load(t, writeAgenda(t, "agenda.json", `{"events": "soon"}`))
	assert.NotNil(err)

	_, err = load(t, writeAgenda(t, "agenda.yaml", "events: soon\n"))
	assert.NotNil(err)

	agenda, err := load(t, writeAgenda(t, "agenda.yaml", "events: ~\n"))
	assert.Nil(err)
	assert.Empty(agenda.Events)
}

func TestLoadJSONWithoutDefaultsAndEvents(t *testing.T) {
	agenda, err := load(t, writeAgenda(t, "agenda.json", `{}`))

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("", agenda.DefaultURL)
	assert.Empty(agenda.Events)
}

func TestLoadYAML(t *testing.T) {
	path := writeAgenda(t, "agenda.yaml", `
defaults:
  url: https://example.org/agenda
events:
  - id: E1
    start: 2024-06-10T15:00:00-04:00
    title: Culto
    location: Sede
  - start: "2024-06-11T19:30:00-04:00"
    title: Ensaio
  - id: 7
    start: ~
`)

	agenda, err := load(t, path)

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("https://example.org/agenda", agenda.DefaultURL)
	assert.Len(agenda.Events, 3)
	assert.Equal("E1", agenda.Events[0].ID.Value)
	assert.Equal("2024-06-10T15:00:00-04:00", agenda.Events[0].Start)
	assert.Equal("Sede", agenda.Events[0].Location.Value)
	assert.False(agenda.Events[1].ID.IsPresent)
	assert.Equal("2024-06-11T19:30:00-04:00", agenda.Events[1].Start)
	assert.Equal("7", agenda.Events[2].ID.Value)
	assert.Equal("", agenda.Events[2].Start)
}

func TestLoadICS(t *testing.T) {
	path := writeAgenda(t, "agenda.ics", "BEGIN:VCALENDAR\r\n"+
		"VERSION:2.0\r\n"+
		"PRODID:-//Agenda//Reminders//PT\r\n"+
		"BEGIN:VEVENT\r\n"+
		"UID:E1\r\n"+
		"DTSTAMP:20240601T000000Z\r\n"+
		"DTSTART:20240610T190000Z\r\n"+
		"SUMMARY:Culto\r\n"+
		"LOCATION:Sede\r\n"+
		"URL:https://example.org/e1\r\n"+
		"END:VEVENT\r\n"+
		"BEGIN:VEVENT\r\n"+
		"UID:E2\r\n"+
		"DTSTAMP:20240601T000000Z\r\n"+
		"DTSTART:20240611T193000\r\n"+
		"SUMMARY:Ensaio\r\n"+
		"END:VEVENT\r\n"+
		"BEGIN:VEVENT\r\n"+
		"UID:E3\r\n"+
		"DTSTAMP:20240601T000000Z\r\n"+
		"DTSTART;VALUE=DATE:20240612\r\n"+
		"END:VEVENT\r\n"+
		"END:VCALENDAR\r\n")

	agenda, err := load(t, path)

	assert := require.New(t)
	assert.Nil(err)
	assert.Len(agenda.Events, 3)

	first := agenda.Events[0]
	assert.Equal("E1", first.ID.Value)
	assert.Equal("Culto", first.Title.Value)
	assert.Equal("Sede", first.Location.Value)
	assert.Equal("https://example.org/e1", first.URL.Value)
	start, ok := event.ParseStart(first.Start, Zone)
	assert.True(ok)
	assert.Equal("2024-06-10T15:00:00-04:00", start.Format(time.RFC3339))

	assert.Equal("2024-06-11T19:30:00-04:00", agenda.Events[1].Start)
	assert.False(agenda.Events[1].Location.IsPresent)
	assert.Equal("2024-06-12T00:00:00-04:00", agenda.Events[2].Start)
	assert.False(agenda.Events[2].Title.IsPresent)
}

func TestLoadErrors(t *testing.T) {
	assert := require.New(t)

	_, err := load(t, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = load(t, writeAgenda(t, "broken.json", `{"events": [`))
	assert.NotNil(err)

	_, err = load(t, writeAgenda(t, "broken.yaml", "events: [\n"))
	assert.NotNil(err)

	_, err = New(logging.NewFakeLogger(), "agenda.csv", Zone)
	assert.ErrorIs(err, ErrUnsupportedFormat)
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		path     string
		expected Format
	}{
		{path: "agenda.json", expected: FormatJSON},
		{path: "agenda", expected: FormatJSON},
		{path: "AGENDA.YML", expected: FormatYAML},
		{path: "/etc/agenda.yaml", expected: FormatYAML},
		{path: "calendar.ics", expected: FormatICalendar},
	}

	for _, testcase := range cases {
		t.Run(testcase.path, func(t *testing.T) {
			format, err := FormatOf(testcase.path)
			require.Nil(t, err)
			require.Equal(t, testcase.expected, format)
		})
	}
}
