package state

import "sync"

// Observer is notified with a fresh Snapshot after every store mutation.
// Notifications are delivered outside the store lock, so concurrent
// mutations may arrive out of order; compare Snapshot.Seq.
type Observer interface {
	StateChanged(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) StateChanged(s Snapshot) { f(s) }

// ChannelObserver adapts Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	mu   sync.Mutex
	ch   chan Snapshot
	last uint64
}

// NewChannelObserver creates a channel-based observer with a buffer of size.
func NewChannelObserver(size int) *ChannelObserver {
	if size < 1 {
		size = 1
	}
	return &ChannelObserver{ch: make(chan Snapshot, size)}
}

// StateChanged sends the snapshot, dropping the oldest pending one when the
// buffer is full so the receiver always ends on the latest state. A snapshot
// older than one already sent is ignored.
func (o *ChannelObserver) StateChanged(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s.Seq < o.last {
		return
	}
	o.last = s.Seq

	for {
		select {
		case o.ch <- s:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}

// C returns the receive side of the channel.
func (o *ChannelObserver) C() <-chan Snapshot {
	return o.ch
}
