package cart

import (
	"errors"
	"sync"

	"tableside/internal/domain"
	"tableside/internal/store"
)

var ErrBadIndex = errors.New("no cart line at that index")

// Line is one selected dish. Quantity is always ≥ 1: a decrement to
// zero removes the line instead.
type Line struct {
	DishID   int    `json:"dish_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
}

// MergePolicy decides what AddItem does with a dish already in the
// cart. The guest menu appends a fresh line every time; the
// authenticated checkout merges by dish id. Both behaviors shipped in
// the web client and both are kept as named policies.
type MergePolicy int

const (
	PolicyAppend MergePolicy = iota
	PolicyMergeByDish
)

// Cart holds the selection in memory and writes every mutation through
// to the session store, so the cart survives restarts.
type Cart struct {
	mu       sync.Mutex
	sessions *store.SessionStore
	policy   MergePolicy
	lines    []Line
}

func New(sessions *store.SessionStore, policy MergePolicy) *Cart {
	c := &Cart{sessions: sessions, policy: policy}
	sessions.GetJSON(store.KeyCart, &c.lines)
	return c
}

// AddItem applies the cart's own policy.
func (c *Cart) AddItem(dish domain.Dish) error {
	return c.Add(dish, c.policy)
}

// Add lets a view pick the policy per call: the guest menu and the
// authenticated checkout share one persisted cart but disagree on
// merging.
func (c *Cart) Add(dish domain.Dish, policy MergePolicy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if policy == PolicyMergeByDish {
		for i := range c.lines {
			if c.lines[i].DishID == dish.ID {
				c.lines[i].Quantity++
				return c.persist()
			}
		}
	}

	c.lines = append(c.lines, Line{
		DishID:   dish.ID,
		Name:     dish.Name,
		Price:    dish.Price,
		Quantity: 1,
		ImageURL: dish.ImageURL,
	})
	return c.persist()
}

// UpdateQuantity adds delta to the line's quantity. A result of zero
// or below removes the line.
func (c *Cart) UpdateQuantity(index, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return ErrBadIndex
	}

	c.lines[index].Quantity += delta
	if c.lines[index].Quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
	}
	return c.persist()
}

func (c *Cart) RemoveItem(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return ErrBadIndex
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return c.persist()
}

func (c *Cart) Empty() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return c.persist()
}

// Lines returns a copy; callers never mutate cart state directly.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) persist() error {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	return c.sessions.SetJSON(store.KeyCart, lines)
}
