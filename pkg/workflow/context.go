package workflow

import "sort"

// Context maps slots to their current value during one run.
// It is owned by a single run and must not be shared between runs.
type Context struct {
	values map[Slot]Value
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{values: make(map[Slot]Value)}
}

// Put binds value to slot, replacing any previous binding.
func (c *Context) Put(slot Slot, value Value) {
	c.values[slot] = value
}

// Seed binds every slot of values.
func (c *Context) Seed(values map[Slot]Value) {
	for slot, value := range values {
		c.Put(slot, value)
	}
}

// Get returns the value bound to slot, or an ErrSlotUnresolved error.
func (c *Context) Get(slot Slot) (Value, error) {
	value, ok := c.values[slot]
	if !ok {
		return Value{}, Unresolved(slot)
	}

	return value, nil
}

// Has reports whether slot is bound.
func (c *Context) Has(slot Slot) bool {
	_, ok := c.values[slot]
	return ok
}

// Slots returns the bound slots in lexical order.
func (c *Context) Slots() []Slot {
	slots := make([]Slot, 0, len(c.values))
	for slot := range c.values {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i] < slots[j]
	})

	return slots
}
