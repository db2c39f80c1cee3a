package connect

import (
	"context"
	"sync"

	"github.com/tliron/commonlog"
)

const DefaultBuffer = 16

func logger() commonlog.Logger { return commonlog.GetLogger("firesale.connect") }

// Channel carries events from the host to the view. Publish never blocks:
// when the buffer is full the event is dropped.
type Channel struct {
	events chan Event
	once   sync.Once
	done   chan struct{}
}

func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Channel{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Publish queues ev and reports whether it was accepted.
func (c *Channel) Publish(ev Event) bool {
	select {
	case <-c.done:
		logger().Warningf("channel closed, dropping %s id=%s", ev.Kind, ev.ID)
		return false
	default:
	}

	select {
	case c.events <- ev:
		logger().Debugf("published %s id=%s path=%q", ev.Kind, ev.ID, ev.Path)
		return true
	default:
		logger().Warningf("channel full, dropping %s id=%s", ev.Kind, ev.ID)
		return false
	}
}

// Listen calls handle for each event in publish order until ctx is done or
// the channel is closed.
func (c *Channel) Listen(ctx context.Context, handle func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case ev := <-c.events:
			handle(ev)
		}
	}
}

func (c *Channel) Close() {
	c.once.Do(func() { close(c.done) })
}
