package event

import "sync"

type Handler func(payload interface{})

// Bus is the in-process pub/sub fabric. Handlers run on their own
// goroutines; publishers never block on consumers.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if hs, ok := b.handlers[topic]; ok {
		for _, h := range hs {
			go h(payload)
		}
	}
}
