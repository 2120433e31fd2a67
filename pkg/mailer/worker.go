package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Outcome tells the queue consumer what to do with a delivery.
type Outcome int

const (
	Ack   Outcome = iota // sent
	Drop                 // malformed or refused; requeueing would loop forever
	Retry                // transient send failure
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// HandleMessage decodes one queued EmailJob and delivers it within timeout.
func HandleMessage(ctx context.Context, s Sender, body []byte, timeout time.Duration) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("decode email job: %w", err)
	}

	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := Deliver(c, s, job); err != nil {
		if errors.Is(err, ErrEmptyJob) || errors.Is(err, ErrRender) || errors.Is(err, ErrRejected) {
			return Drop, err
		}
		return Retry, err
	}
	return Ack, nil
}
