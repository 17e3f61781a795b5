package reminder

import "time"

// Instruction is a fully formed notification that has not been submitted yet.
type Instruction struct {
	Title    string
	Message  string
	SendAt   time.Time
	Key      string
	URL      string
	EventKey string
	Offset   Offset
}

type Outcome struct {
	Success        bool
	Key            string
	SendAt         time.Time
	StatusCode     int
	NotificationID string
	ResponseBody   string
	Err            error
}

func NewOutcome(instruction Instruction) Outcome {
	return Outcome{Key: instruction.Key, SendAt: instruction.SendAt}
}
