package agendaloader

import (
	c "agendareminder/internal/core/domain/common"
	e "agendareminder/internal/core/domain/errors"
	"agendareminder/internal/core/domain/event"
	"agendareminder/internal/core/domain/logging"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported agenda format")

type Format string

const (
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatICalendar Format = "ics"
)

// FormatOf infers the agenda format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical":
		return FormatICalendar, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// document is the shape shared by the JSON and YAML agendas.
type document struct {
	Defaults struct {
		URL flexibleString `json:"url" yaml:"url"`
	} `json:"defaults" yaml:"defaults"`
	Events entries `json:"events" yaml:"events"`
}

type entry struct {
	ID       flexibleString `json:"id" yaml:"id"`
	Start    flexibleString `json:"start" yaml:"start"`
	Title    flexibleString `json:"title" yaml:"title"`
	Location flexibleString `json:"location" yaml:"location"`
	URL      flexibleString `json:"url" yaml:"url"`
}

func (d document) agenda() event.Agenda {
	agenda := event.Agenda{
		DefaultURL: string(d.Defaults.URL),
		Events:     make([]event.Record, 0, len(d.Events)),
	}
	for _, en := range d.Events {
		agenda.Events = append(agenda.Events, event.Record{
			ID:       c.NewOptionalString(string(en.ID)),
			Start:    string(en.Start),
			Title:    c.NewOptionalString(string(en.Title)),
			Location: c.NewOptionalString(string(en.Location)),
			URL:      c.NewOptionalString(string(en.URL)),
		})
	}
	return agenda
}

type Loader struct {
	log    logging.Logger
	path   string
	format Format
	loc    *time.Location
}

// New returns a loader for the agenda file at path. The location is used
// for iCalendar date-only starts.
func New(log logging.Logger, path string, loc *time.Location) (*Loader, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if loc == nil {
		panic(e.NewNilArgumentError("loc"))
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return &Loader{log: log, path: path, format: format, loc: loc}, nil
}

func (l *Loader) Load(ctx context.Context) (agenda event.Agenda, err error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return agenda, fmt.Errorf("could not read agenda: %w", err)
	}

	switch l.format {
	case FormatJSON:
		agenda, err = parseJSON(data)
	case FormatYAML:
		agenda, err = parseYAML(data)
	case FormatICalendar:
		agenda, err = parseICS(data, l.loc)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return agenda, fmt.Errorf("could not parse agenda %s: %w", l.path, err)
	}

	l.log.Info(
		ctx,
		"Agenda has been loaded.",
		logging.Entry("path", l.path),
		logging.Entry("format", l.format),
		logging.Entry("events", len(agenda.Events)),
	)
	return agenda, nil
}
