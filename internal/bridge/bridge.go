package bridge

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tableside/internal/domain"
)

// Events pushed by the socket server.
const (
	EventWaiterCall = "waiter_call"
	EventNewOrder   = "new_order"
)

type WaiterCallEvent struct {
	TableID     int    `json:"table_id"`
	TableNumber int    `json:"table_number,omitempty"`
	Message     string `json:"message,omitempty"`
}

type NewOrderEvent struct {
	TableID int `json:"table_id"`
	OrderID int `json:"order_id"`
}

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	}
	return "disconnected"
}

// envelope is the channel's message frame, both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinPayload struct {
	Role     domain.Role `json:"role"`
	UserID   int         `json:"user_id,omitempty"`
	ClientID string      `json:"client_id"`
}

// Handler receives one pushed event. Delivery is at-most-once and in
// order; an event redelivered by the server after a reconnect arrives
// again, so handlers must be idempotent.
type Handler func(data json.RawMessage)

// Token identifies a subscription for Unsubscribe.
type Token int

// Dialer lets tests swap the websocket transport.
type Dialer interface {
	Dial(urlStr string, requestHeader http.Header) (*websocket.Conn, error)
}

type gorillaDialer struct{}

func (gorillaDialer) Dial(urlStr string, header http.Header) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(urlStr, header)
	return conn, err
}

// Bridge is a reconnecting event-channel client. Construction does not
// connect; the view that needs live events calls Connect and owns the
// matching Close. Connection drops are never fatal, the bridge backs
// off and redials until closed.
type Bridge struct {
	url      string
	dialer   Dialer
	clientID string

	mu      sync.Mutex
	state   State
	subs    map[string]map[Token]Handler
	next    Token
	conn    *websocket.Conn
	role    domain.Role
	userID  int
	started bool
}

func New(url string) *Bridge {
	return NewWithDialer(url, gorillaDialer{})
}

func NewWithDialer(url string, dialer Dialer) *Bridge {
	return &Bridge{
		url:      url,
		dialer:   dialer,
		clientID: uuid.New().String(),
		subs:     map[string]map[Token]Handler{},
	}
}

// Subscribe registers a handler for one event type and returns the
// token that cancels it. Safe before or after Connect.
func (b *Bridge) Subscribe(event string, handler Handler) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	if b.subs[event] == nil {
		b.subs[event] = map[Token]Handler{}
	}
	b.subs[event][b.next] = handler
	return b.next
}

func (b *Bridge) Unsubscribe(token Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, handlers := range b.subs {
		delete(handlers, token)
	}
}

// Connect starts the connection loop for the given identity. Calling
// it again while running is a no-op; after Close it is an error.
func (b *Bridge) Connect(role domain.Role, userID int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed || b.started {
		return
	}
	b.started = true
	b.role = role
	b.userID = userID
	b.state = StateConnecting

	go b.run()
}

func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) Connected() bool {
	return b.State() == StateConnected
}

// Close tears the channel down for good. No handler runs after Close
// returns the bridge to callers; buffered server events are dropped.
func (b *Bridge) Close() {
	b.mu.Lock()
	b.state = StateClosed
	conn := b.conn
	b.conn = nil
	b.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

func (b *Bridge) run() {
	backoff := time.Second

	for {
		if b.State() == StateClosed {
			return
		}

		conn, err := b.dialer.Dial(b.url, nil)
		if err != nil {
			log.Printf("[tableside] socket dial failed: %v", err)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}

		b.mu.Lock()
		if b.state == StateClosed {
			b.mu.Unlock()
			_ = conn.Close()
			return
		}
		b.conn = conn
		b.state = StateConnected
		role, userID := b.role, b.userID
		b.mu.Unlock()

		backoff = time.Second
		log.Printf("[tableside] socket connected as %s", role)

		if err := b.join(conn, role, userID); err != nil {
			log.Printf("[tableside] socket join failed: %v", err)
		}

		b.readLoop(conn)

		b.mu.Lock()
		if b.state == StateClosed {
			b.mu.Unlock()
			return
		}
		b.conn = nil
		b.state = StateConnecting
		b.mu.Unlock()
		log.Printf("[tableside] socket disconnected, reconnecting")
	}
}

// join announces the subscriber identity so the server routes events
// to the right room. Waiters carry their user id.
func (b *Bridge) join(conn *websocket.Conn, role domain.Role, userID int) error {
	payload := joinPayload{Role: role, ClientID: b.clientID}
	if role == domain.RoleWaiter {
		payload.UserID = userID
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(envelope{Event: "join_room", Data: raw})
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			_ = conn.Close()
			return
		}
		b.dispatch(msg)
	}
}

// dispatch invokes the registered handlers in delivery order, without
// dedup. Handlers run on the read goroutine, so slow handlers delay
// later events instead of reordering them.
func (b *Bridge) dispatch(msg envelope) {
	b.mu.Lock()
	if b.state == StateClosed {
		b.mu.Unlock()
		return
	}
	handlers := make([]Handler, 0, len(b.subs[msg.Event]))
	tokens := make([]Token, 0, len(b.subs[msg.Event]))
	for token := range b.subs[msg.Event] {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	for _, token := range tokens {
		handlers = append(handlers, b.subs[msg.Event][token])
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(msg.Data)
	}
}
