package notify

// Handler receives events from a Channel.
type Handler[T any] func(T)

// Channel broadcasts values to its handlers synchronously, in subscription
// order. There is no queue, no de-duplication and no unsubscribe. Handlers
// must not mutate the registry that owns the channel.
type Channel[T any] struct {
	name     string
	handlers []Handler[T]
}

// NewChannel returns an empty channel labelled name.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the channel label.
func (c *Channel[T]) Name() string {
	return c.name
}

// Subscribe appends h and returns the new subscriber count. A nil handler is
// ignored.
func (c *Channel[T]) Subscribe(h Handler[T]) int {
	if h != nil {
		c.handlers = append(c.handlers, h)
	}
	return len(c.handlers)
}

// Emit calls every handler with v before returning. Handlers added while
// Emit runs are first called on the next Emit.
func (c *Channel[T]) Emit(v T) {
	hs := c.handlers
	for _, h := range hs {
		h(v)
	}
}

// Len returns the number of subscribers.
func (c *Channel[T]) Len() int {
	return len(c.handlers)
}
