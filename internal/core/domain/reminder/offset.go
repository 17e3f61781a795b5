package reminder

import "time"

// Offset defines how long before an event a reminder fires.
type Offset struct {
	Before time.Duration
	Label  string
}

func (o Offset) Minutes() int64 {
	return int64(o.Before / time.Minute)
}

var (
	OffsetFourHours = Offset{Before: 4 * time.Hour, Label: "4 horas"}
	OffsetOneHour   = Offset{Before: time.Hour, Label: "1 hora"}
)

// DefaultOffsets returns the offsets in processing order.
func DefaultOffsets() []Offset {
	return []Offset{OffsetFourHours, OffsetOneHour}
}
