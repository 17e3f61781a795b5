package reminder

import (
	"agendareminder/internal/core/domain/event"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DEFAULT_NAMESPACE = "agenda-ccb"
const DEFAULT_HEADING = "Lembrete CCB"
const DEFAULT_FALLBACK_TITLE = "Culto"

// Reminders due sooner than this are not scheduled.
const SAFETY_MARGIN = time.Minute

const EVENT_KEY_TIME_LAYOUT = "2006-01-02T15:04:05.000Z07:00"

var whitespace = regexp.MustCompile(`\s+`)

// Weekdays holds short weekday names indexed by time.Weekday.
type Weekdays [7]string

var PortugueseWeekdays = Weekdays{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

// NewWeekdays builds a table from names starting on Sunday.
func NewWeekdays(names []string) (Weekdays, error) {
	w := Weekdays{}
	if len(names) != len(w) {
		return w, fmt.Errorf("expected %d weekday names, got %d", len(w), len(names))
	}
	for ix, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return Weekdays{}, fmt.Errorf("weekday name %d is empty", ix)
		}
		w[ix] = name
	}
	return w, nil
}

type Planner struct {
	Namespace     string
	Heading       string
	FallbackTitle string
	DefaultURL    string
	Weekdays      Weekdays
}

func NewPlanner(defaultURL string) Planner {
	return Planner{
		Namespace:     DEFAULT_NAMESPACE,
		Heading:       DEFAULT_HEADING,
		FallbackTitle: DEFAULT_FALLBACK_TITLE,
		DefaultURL:    defaultURL,
		Weekdays:      PortugueseWeekdays,
	}
}

// Plan builds one instruction per offset whose send time is still safely
// in the future relative to now.
func (p Planner) Plan(ev event.Filtered, offsets []Offset, now time.Time) []Instruction {
	eventKey := EventKey(ev)
	threshold := now.Add(SAFETY_MARGIN)

	instructions := make([]Instruction, 0, len(offsets))
	for _, offset := range offsets {
		sendAt := ev.Start.Add(-offset.Before)
		if !sendAt.After(threshold) {
			continue
		}
		instructions = append(instructions, Instruction{
			Title:    p.Heading,
			Message:  p.message(ev, offset),
			SendAt:   sendAt.UTC(),
			Key:      DeduplicationKey(p.Namespace, eventKey, offset),
			URL:      ev.Record.URL.ValueOr(p.DefaultURL),
			EventKey: eventKey,
			Offset:   offset,
		})
	}
	return instructions
}

func (p Planner) message(ev event.Filtered, offset Offset) string {
	place := ""
	if ev.Record.Location.IsPresent {
		place = " - " + ev.Record.Location.Value
	}
	return fmt.Sprintf(
		"Daqui %s: %s%s. Hoje %s.",
		offset.Label,
		ev.Record.Title.ValueOr(p.FallbackTitle),
		place,
		FormatWhen(ev.Start, p.Weekdays),
	)
}

// FormatWhen renders t as "dd/MM (wd) às HH:mm" in t's own location. An
// empty table falls back to Portuguese names.
func FormatWhen(t time.Time, weekdays Weekdays) string {
	if weekdays == (Weekdays{}) {
		weekdays = PortugueseWeekdays
	}
	return fmt.Sprintf("%s (%s) às %s", t.Format("02/01"), weekdays[t.Weekday()], t.Format("15:04"))
}

// EventKey identifies an event across runs. Events without an identifier
// are keyed by their start, title and location.
func EventKey(ev event.Filtered) string {
	if ev.Record.ID.IsPresent {
		return ev.Record.ID.Value
	}
	composite := strings.Join(
		[]string{
			ev.Start.Format(EVENT_KEY_TIME_LAYOUT),
			ev.Record.Title.Value,
			ev.Record.Location.Value,
		},
		"|",
	)
	return whitespace.ReplaceAllString(composite, "_")
}

func DeduplicationKey(namespace string, eventKey string, offset Offset) string {
	return fmt.Sprintf("%s:%s:%d", namespace, eventKey, offset.Minutes())
}
