package event

import (
	c "agendareminder/internal/core/domain/common"
	"context"
	"time"
)

// Record is a single agenda entry as supplied by the agenda source.
// Start is kept raw; it is resolved by Select.
type Record struct {
	ID       c.Optional[string]
	Start    string
	Title    c.Optional[string]
	Location c.Optional[string]
	URL      c.Optional[string]
}

type Agenda struct {
	DefaultURL string
	Events     []Record
}

// Filtered is a Record whose start has been resolved in the configured zone.
type Filtered struct {
	Record Record
	Start  time.Time
}

type Source interface {
	Load(ctx context.Context) (Agenda, error)
}
