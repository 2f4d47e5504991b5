package pageobject

import (
	"context"
	"fmt"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// Collection is a lazy view over a homogeneous repeated region. It holds the
// region capability, the child factory and the config, nothing else: count is
// evaluated against the live DOM on every call and children are constructed
// on demand. Two successive Count or iteration calls may observe different
// DOM states; callers must treat any returned count as a snapshot valid only
// until the next suspension point.
type Collection struct {
	scope    interfaces.Capability
	newChild Factory
	config   *entities.SiteConfig
	page     interfaces.Navigator
}

// NewCollection wraps a repeated-region capability.
func NewCollection(scope interfaces.Capability, newChild Factory, cfg *entities.SiteConfig, page interfaces.Navigator) *Collection {
	return &Collection{scope: scope, newChild: newChild, config: cfg, page: page}
}

// Capability returns the repeated-region handle the collection wraps.
func (c *Collection) Capability() interfaces.Capability { return c.scope }

// Count queries the live DOM for the number of matched elements. Zero is a
// valid count, not an error.
func (c *Collection) Count(ctx context.Context) (int, error) {
	return c.scope.Count(ctx)
}

// Nth constructs the child at position index. No bounds check is performed:
// an out-of-range index yields a child whose capability resolves to zero
// elements, and the first action against it fails with the engine's
// not-found condition. The error surfaces at use, never here.
func (c *Collection) Nth(index int) Component {
	return c.newChild(c.scope.Nth(index), c.config, c.page)
}

// First is Nth(0).
func (c *Collection) First() Component {
	return c.newChild(c.scope.First(), c.config, c.page)
}

// Last constructs the child bound to the final matched element, resolved
// lazily at time of use.
func (c *Collection) Last() Component {
	return c.newChild(c.scope.Last(), c.config, c.page)
}

// FilterByText returns a new collection narrowed to elements whose text
// contains text. The receiver is untouched.
func (c *Collection) FilterByText(text string) *Collection {
	return NewCollection(c.scope.FilterByText(text), c.newChild, c.config, c.page)
}

// FilterHas returns a new collection narrowed to elements containing a match
// for selector. The receiver is untouched.
func (c *Collection) FilterHas(selector string) *Collection {
	return NewCollection(c.scope.FilterHas(selector), c.newChild, c.config, c.page)
}

// Each performs one logical scan: the count is queried once at the start and
// positions 0..count-1 are visited in order. If the region shrinks
// mid-iteration, trailing children resolve empty per the Nth contract rather
// than raising — best effort, not snapshot isolation. The scan stops at the
// first error returned by fn.
func (c *Collection) Each(ctx context.Context, fn func(index int, child Component) error) error {
	count, err := c.Count(ctx)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := fn(i, c.Nth(i)); err != nil {
			return err
		}
	}
	return nil
}

// All drains one scan into a fully materialized, index-ordered slice.
func (c *Collection) All(ctx context.Context) ([]Component, error) {
	count, err := c.Count(ctx)
	if err != nil {
		return nil, err
	}
	children := make([]Component, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, c.Nth(i))
	}
	return children, nil
}

// At is a typed convenience over Collection.Nth. The second return is false
// when the factory's product is not a T.
func At[T Component](c *Collection, index int) (T, bool) {
	child, ok := c.Nth(index).(T)
	return child, ok
}

// Items drains one scan into a typed slice, skipping nothing: a child that
// is not a T fails the whole call.
func Items[T Component](ctx context.Context, c *Collection) ([]T, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(all))
	for _, child := range all {
		item, ok := child.(T)
		if !ok {
			return nil, errWrongChildType[T](child)
		}
		items = append(items, item)
	}
	return items, nil
}

func errWrongChildType[T Component](got Component) error {
	var want T
	return fmt.Errorf("collection child is %T, want %T", got, want)
}
