package pageobject

import (
	"context"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// Component is the minimal surface every page fragment exposes.
type Component interface {
	Capability() interfaces.Capability
	Config() *entities.SiteConfig
}

// Scoped is the base for all page fragments: a DOM-region capability plus
// the resolved site configuration, optionally with the page-level handle for
// actions that must escape the component's own scope. Concrete components
// embed Scoped and add behavior on top of the bound capability.
//
// Construction is synchronous and touches no DOM; the only work performed is
// materializing the child slots declared for the owner's exact type. The
// binding is fixed for the component's lifetime — there is no teardown, the
// automation engine owns the capability.
type Scoped struct {
	scope  interfaces.Capability
	config *entities.SiteConfig
	page   interfaces.Navigator
	slots  map[string]any
}

// NewScoped binds a component to its region and materializes its declared
// children. owner is the concrete component under construction (usually the
// receiver being initialized); its exact runtime type selects the bindings.
// page may be nil for components that never escape their scope.
func NewScoped(owner any, scope interfaces.Capability, cfg *entities.SiteConfig, page interfaces.Navigator) Scoped {
	return Scoped{
		scope:  scope,
		config: cfg,
		page:   page,
		slots:  materialize(owner, scope, cfg, page),
	}
}

// materialize runs the declared-binding walk: for every descriptor on the
// owner's exact type it derives a narrowed capability from the parent scope
// and constructs either the child directly or a lazy collection over the
// repeated region. Children recurse depth-first through their own
// constructors. Narrowing is inert, so no navigation or DOM round-trip
// happens here.
func materialize(owner any, scope interfaces.Capability, cfg *entities.SiteConfig, page interfaces.Navigator) map[string]any {
	descriptors := Bindings(owner)
	if len(descriptors) == 0 {
		return nil
	}
	slots := make(map[string]any, len(descriptors))
	for name, d := range descriptors {
		narrowed := scope.Locator(d.Selector)
		if d.Cardinality == Many {
			slots[name] = NewCollection(narrowed, d.New, cfg, page)
		} else {
			slots[name] = d.New(narrowed, cfg, page)
		}
	}
	return slots
}

// Capability returns the DOM-region handle this component is bound to.
func (s *Scoped) Capability() interfaces.Capability { return s.scope }

// Config returns the resolved site configuration.
func (s *Scoped) Config() *entities.SiteConfig { return s.config }

// Page returns the page-level handle, or nil when none was supplied.
func (s *Scoped) Page() interfaces.Navigator { return s.page }

// Slot returns the materialized child for a declared slot name, or nil for
// slots that were never declared.
func (s *Scoped) Slot(name string) any { return s.slots[name] }

// Child returns a singular slot as a Component, or nil.
func (s *Scoped) Child(name string) Component {
	c, _ := s.slots[name].(Component)
	return c
}

// Collection returns a many-cardinality slot, or nil.
func (s *Scoped) Collection(name string) *Collection {
	c, _ := s.slots[name].(*Collection)
	return c
}

// Click clicks the component's bound region.
func (s *Scoped) Click(ctx context.Context) error {
	return s.scope.Click(ctx)
}

// Fill types text into the component's bound region.
func (s *Scoped) Fill(ctx context.Context, text string) error {
	return s.scope.Fill(ctx, text)
}

// Text returns the region's text content.
func (s *Scoped) Text(ctx context.Context) (string, error) {
	return s.scope.TextContent(ctx)
}

// Visible reports whether the region is currently visible.
func (s *Scoped) Visible(ctx context.Context) (bool, error) {
	return s.scope.IsVisible(ctx)
}

// Attr reads an attribute off the region.
func (s *Scoped) Attr(ctx context.Context, name string) (string, error) {
	return s.scope.GetAttribute(ctx, name)
}

// WaitVisible blocks until the region becomes visible.
func (s *Scoped) WaitVisible(ctx context.Context) error {
	return s.scope.WaitFor(ctx, "visible")
}
