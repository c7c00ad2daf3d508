package pubsub

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// Broker is an in-process topic registry: a mapping from topic name to the
// set of active subscriber channels. Delivery is best-effort — no retry, no
// persistence of missed events, no replay for subscribers that connect
// after a publish.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]chan interface{}
	nextID uint64
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[uint64]chan interface{})}
}

// Subscribe registers a new subscriber channel on the topic. The returned
// cancel func removes the subscription and closes the channel; it is safe
// to call more than once.
func (b *Broker) Subscribe(topic string) (<-chan interface{}, func()) {
	b.mu.Lock()
	ch := make(chan interface{}, subscriberBuffer)
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[uint64]chan interface{})
	}
	id := b.nextID
	b.nextID++
	b.topics[topic][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.topics[topic]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.topics, topic)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish pushes the payload to every subscriber currently registered on
// the topic. A subscriber whose buffer is full is skipped rather than
// blocking the publisher.
func (b *Broker) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.topics[topic] {
		select {
		case ch <- payload:
		default:
			log.Warn().Str("topic", topic).Msg("pubsub: subscriber buffer full, event dropped")
		}
	}
}

// Subscribers reports how many channels are registered on the topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
