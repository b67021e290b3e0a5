package sub

import (
	"context"
	"time"
)

// Interval delivers a message on a fixed period. The first message
// arrives one period after the subscription starts.
type Interval[M any] struct {
	name  string
	every time.Duration
	fn    func(time.Time) M
}

// NewInterval builds an interval subscription. fn maps each firing
// time to the message delivered to Update.
func NewInterval[M any](name string, every time.Duration, fn func(time.Time) M) *Interval[M] {
	return &Interval[M]{name: name, every: every, fn: fn}
}

func (i *Interval[M]) ID() string { return i.name }

func (i *Interval[M]) Run(ctx context.Context, send func(M)) {
	ticker := time.NewTicker(i.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			send(i.fn(t))
		}
	}
}
