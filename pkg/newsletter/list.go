package newsletter

import (
	"sort"

	"github.com/pkg/errors"
)

// List is a named segment of contacts, known locally by name and remotely by ID.
type List struct {
	Name string
	ID   int64
}

// ListCollection holds the configured lists. It is built once and never
// mutated afterwards, so it is safe for concurrent readers.
type ListCollection struct {
	lists map[string]List
}

func NewListCollection(lists map[string]int64) *ListCollection {
	c := &ListCollection{lists: make(map[string]List, len(lists))}
	for name, id := range lists {
		c.lists[name] = List{Name: name, ID: id}
	}

	return c
}

func (c *ListCollection) FindByName(name string) (List, error) {
	list, ok := c.lists[name]
	if !ok {
		return List{}, errors.Wrapf(ErrConfiguration, "list %q is not configured", name)
	}

	return list, nil
}

// ResolveNames maps list names to provider list ids, keeping the order of
// names. No names resolve to an empty slice; the first unknown name fails
// the whole call.
func (c *ListCollection) ResolveNames(names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		list, err := c.FindByName(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, list.ID)
	}

	return ids, nil
}

// Names returns the configured list names in sorted order.
func (c *ListCollection) Names() []string {
	names := make([]string, 0, len(c.lists))
	for name := range c.lists {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
