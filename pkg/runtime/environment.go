package runtime

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// noParent marks the root frame.
const noParent = -1

// Environment is one frame of bindings. Keys keep their insertion order.
type Environment struct {
	values *linkedhashmap.Map
	parent int
}

// NewEnvironment creates a frame whose parent is the frame at index parent
// in its ScopeChain (-1 for the root).
func NewEnvironment(parent int) *Environment {
	return &Environment{
		values: linkedhashmap.New(),
		parent: parent,
	}
}

// Parent returns the index of the enclosing frame, or -1 for the root.
func (e *Environment) Parent() int {
	return e.parent
}

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Lookup returns the binding held by this frame only.
func (e *Environment) Lookup(name string) (Value, bool) {
	raw, ok := e.values.Get(name)
	if !ok {
		return nil, false
	}
	return raw.(Value), true
}

// Keys returns the bound names in insertion order.
func (e *Environment) Keys() []string {
	raw := e.values.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

// Len is the number of bindings held by this frame.
func (e *Environment) Len() int {
	return e.values.Size()
}

// ScopeChain is a stack of frames linked to their parents by index. The root
// frame is created with the chain and is never popped.
type ScopeChain struct {
	frames []*Environment
}

func NewScopeChain() *ScopeChain {
	return &ScopeChain{frames: []*Environment{NewEnvironment(noParent)}}
}

// Push opens a child of the current frame and returns the new depth.
func (c *ScopeChain) Push() int {
	c.frames = append(c.frames, NewEnvironment(len(c.frames)-1))
	return len(c.frames)
}

// Pop discards the current frame. The root frame stays in place.
func (c *ScopeChain) Pop() {
	if len(c.frames) <= 1 {
		return
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// Depth is the number of live frames, root included.
func (c *ScopeChain) Depth() int {
	return len(c.frames)
}

func (c *ScopeChain) Current() *Environment {
	return c.frames[len(c.frames)-1]
}

func (c *ScopeChain) Root() *Environment {
	return c.frames[0]
}

// Resolve finds the nearest frame, starting at the current one, that binds
// name.
func (c *ScopeChain) Resolve(name string) (*Environment, bool) {
	for idx := len(c.frames) - 1; idx != noParent; {
		frame := c.frames[idx]
		if _, ok := frame.Lookup(name); ok {
			return frame, true
		}
		idx = frame.parent
	}
	return nil, false
}

// Get returns the value bound to name, or None when no frame binds it.
func (c *ScopeChain) Get(name string) Value {
	frame, ok := c.Resolve(name)
	if !ok {
		return None
	}
	v, _ := frame.Lookup(name)
	return v
}

// Assign updates name in its owning frame, or declares it in the current
// frame when no frame binds it yet.
func (c *ScopeChain) Assign(name string, value Value) {
	if frame, ok := c.Resolve(name); ok {
		frame.Define(name, value)
		return
	}
	c.Current().Define(name, value)
}
