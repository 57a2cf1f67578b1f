// bus.go
package bus

import (
	"context"
	"sync"
)

// -----------------------------------------------------------------------------
// Topics
// -----------------------------------------------------------------------------

// Topic is a sequence of comparable tokens (strings, ints).
// Subscription topics may contain the wildcards "+" (exactly one token)
// and "#" (zero or more trailing tokens).
type Topic []any

// T builds a Topic and validates that every token is usable as a map key.
func T(tokens ...any) Topic {
	probe := make(map[any]struct{}, 1)
	for _, tok := range tokens {
		probe[tok] = struct{}{} // panics on non-comparable tokens
		delete(probe, tok)
	}
	return Topic(tokens)
}

func (t Topic) Len() int { return len(t) }

func (t Topic) At(i int) any { return t[i] }

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

// CanReply reports whether the sender set up a reply path.
func (m *Message) CanReply() bool { return len(m.ReplyTo) > 0 }

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	bus   *Bus
	conn  *Connection // owning connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Trie node
// -----------------------------------------------------------------------------

type node struct {
	children map[any]*node
	subs     []*Subscription
	retained *Message
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu   sync.RWMutex
	root *node
	qLen int
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		root: &node{},
		qLen: queueLen,
	}
}

// NewMessage builds a message ready for Publish.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// addSubscription inserts a subscription into the trie and delivers any
// retained messages its (possibly wildcarded) topic matches.
func (b *Bus) addSubscription(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range topic {
		if n.children == nil {
			n.children = make(map[any]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	collectRetained(b.root, topic, func(m *Message) { enqueue(sub, m) })
}

// collectRetained walks the trie along pattern, invoking emit for every
// retained message the pattern matches.
func collectRetained(n *node, pattern Topic, emit func(*Message)) {
	if len(pattern) == 0 {
		if n.retained != nil {
			emit(n.retained)
		}
		return
	}
	switch pattern[0] {
	case "#":
		emitSubtree(n, emit)
	case "+":
		for _, child := range n.children {
			collectRetained(child, pattern[1:], emit)
		}
	default:
		if child, ok := n.children[pattern[0]]; ok {
			collectRetained(child, pattern[1:], emit)
		}
	}
}

// emitSubtree emits retained messages at n and all of its descendants.
func emitSubtree(n *node, emit func(*Message)) {
	if n.retained != nil {
		emit(n.retained)
	}
	for _, child := range n.children {
		emitSubtree(child, emit)
	}
}

// Publish delivers a message to every subscriber whose topic matches,
// and stores or clears the retained copy when msg.Retained is set.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	match(b.root, msg.Topic, msg)

	if !msg.Retained {
		return
	}
	// Retained messages create their path; a nil payload clears the slot.
	n := b.root
	for _, tok := range msg.Topic {
		if n.children == nil {
			n.children = make(map[any]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	if msg.Payload == nil {
		n.retained = nil
	} else {
		n.retained = msg
	}
}

// match walks the subscription trie against a concrete topic, honoring
// "+" (one token) and "#" (zero or more trailing tokens) branches.
func match(n *node, topic Topic, msg *Message) {
	if len(topic) == 0 {
		deliver(n.subs, msg)
		if h, ok := n.children["#"]; ok {
			deliver(h.subs, msg)
		}
		return
	}
	if n.children == nil {
		return
	}
	if child, ok := n.children[topic[0]]; ok {
		match(child, topic[1:], msg)
	}
	if child, ok := n.children["+"]; ok {
		match(child, topic[1:], msg)
	}
	if child, ok := n.children["#"]; ok {
		deliver(child.subs, msg)
	}
}

func deliver(subs []*Subscription, msg *Message) {
	for _, sub := range subs {
		enqueue(sub, msg)
	}
}

// enqueue is drop-oldest: a full queue sheds its oldest message rather
// than blocking the publisher.
func enqueue(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
		return
	default:
	}
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- msg:
	default:
	}
}

// unsubscribe removes a subscription from the trie.
func (b *Bus) unsubscribe(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var stack []*node
	for _, tok := range topic {
		if n.children == nil {
			return
		}
		child, ok := n.children[tok]
		if !ok {
			return
		}
		stack = append(stack, n)
		n = child
	}

	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}

	// Prune empty nodes.
	for i := len(topic) - 1; i >= 0; i-- {
		parent := stack[i]
		key := topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus      *Bus
	subs     []*Subscription
	mu       sync.Mutex
	id       string
	replySeq int
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{
		bus: b,
		id:  id,
	}
}

// NewMessage builds a message ready for Publish.
func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

// Subscribe registers a subscription owned by this connection.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		bus:   c.bus,
		conn:  c,
	}
	c.bus.addSubscription(topic, sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub.topic, sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub.topic, sub)
		close(sub.ch)
	}
}

// -----------------------------------------------------------------------------
// Request / Reply
// -----------------------------------------------------------------------------

// Request assigns a private reply topic to msg, subscribes to it, and
// publishes the request. The caller owns the returned subscription.
func (c *Connection) Request(msg *Message) *Subscription {
	c.mu.Lock()
	c.replySeq++
	seq := c.replySeq
	c.mu.Unlock()

	msg.ReplyTo = Topic{"_reply", c.id, seq}
	sub := c.Subscribe(msg.ReplyTo)
	c.bus.Publish(msg)
	return sub
}

// RequestWait performs Request and blocks for the first reply or ctx expiry.
func (c *Connection) RequestWait(ctx context.Context, msg *Message) (*Message, error) {
	sub := c.Request(msg)
	defer c.Unsubscribe(sub)

	select {
	case reply := <-sub.ch:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reply publishes a response on the request's reply topic, if any.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if !req.CanReply() {
		return
	}
	c.bus.Publish(&Message{Topic: req.ReplyTo, Payload: payload, Retained: retained})
}
