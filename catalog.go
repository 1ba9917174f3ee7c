package simplify

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog indexes types by name. Entries are added at definition time or at
// run time and never pruned.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{types: map[string]*Type{}} }

// DefaultCatalog is the process-wide catalog used by RegisterType and LookupType.
var DefaultCatalog = NewCatalog()

// Register adds t under its name. Registering the same *Type twice is a
// no-op; a different type under a taken name is an error.
func (c *Catalog) Register(t *Type) error {
	if t == nil {
		return fmt.Errorf("simplify: register nil type")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.types[t.name]; ok {
		if prev == t {
			return nil
		}
		return fmt.Errorf("simplify: type %q already registered", t.name)
	}
	c.types[t.name] = t
	return nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	c.mu.RLock()
	t, ok := c.types[name]
	c.mu.RUnlock()
	return t, ok
}

// Names returns the registered type names in ascending order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.types))
	for n := range c.types {
		out = append(out, n)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}

// RegisterType adds t to DefaultCatalog.
func RegisterType(t *Type) error { return DefaultCatalog.Register(t) }

// LookupType finds a type in DefaultCatalog.
func LookupType(name string) (*Type, bool) { return DefaultCatalog.Lookup(name) }
