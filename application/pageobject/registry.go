// Package pageobject implements the composition model for browser page
// objects: a process-wide registry of declarative child bindings, a scoped
// component base, lazy collections over repeated regions and route-bound page
// roots. Bindings and routes are registered once, at package init time,
// before any test runs; thereafter the registry is read-only.
package pageobject

import (
	"reflect"
	"sync"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// Cardinality says whether a binding names a single child or a repeated
// region.
type Cardinality int

const (
	One Cardinality = iota
	Many
)

// Factory constructs a child component bound to an already narrowed
// capability. The page parameter lets children act outside their own DOM
// scope when they must.
type Factory func(scope interfaces.Capability, cfg *entities.SiteConfig, page interfaces.Navigator) Component

// Descriptor declares one child slot on an owning component type.
type Descriptor struct {
	Selector    string
	Cardinality Cardinality
	New         Factory
}

var (
	registryMu sync.RWMutex
	bindings   = map[reflect.Type]map[string]Descriptor{}
	routes     = map[reflect.Type]string{}
)

// keyOf maps a typed nil pointer or an instance to its concrete type, the
// registry's class-identity key.
func keyOf(owner any) reflect.Type {
	t := reflect.TypeOf(owner)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Register declares a child slot on owner, given as a typed nil pointer,
// e.g. Register((*LoginPage)(nil), "form", Descriptor{...}).
//
// Re-registering an existing (owner, slot) pair overwrites the previous
// descriptor; the last writer wins. Lookup is exact-type only: embedding a
// component type does not carry its bindings over, a type that wants a base
// type's slots re-registers them.
func Register(owner any, slot string, d Descriptor) {
	key := keyOf(owner)
	registryMu.Lock()
	defer registryMu.Unlock()
	slots, ok := bindings[key]
	if !ok {
		slots = map[string]Descriptor{}
		bindings[key] = slots
	}
	slots[slot] = d
}

// RegisterRoute attaches a navigable route to a page root type. Overwrites
// any previously registered route for the same type.
func RegisterRoute(owner any, route string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	routes[keyOf(owner)] = route
}

// Lookup returns the descriptor for one slot on owner's exact type.
func Lookup(owner any, slot string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := bindings[keyOf(owner)][slot]
	return d, ok
}

// Bindings returns a copy of every slot declared on owner's exact type.
// Unregistered types yield an empty map.
func Bindings(owner any) map[string]Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()
	slots := bindings[keyOf(owner)]
	out := make(map[string]Descriptor, len(slots))
	for name, d := range slots {
		out[name] = d
	}
	return out
}

// RouteOf returns the route registered for owner's exact type.
func RouteOf(owner any) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	route, ok := routes[keyOf(owner)]
	return route, ok
}
