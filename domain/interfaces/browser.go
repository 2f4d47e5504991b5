package interfaces

import (
	"context"

	"pageforge/domain/entities"
)

// Capability is an opaque handle to a DOM region owned by the automation
// engine. Narrowing methods (Locator, Nth, First, Last, Filter*) are inert:
// they derive a new handle without touching the browser. Only the
// context-taking methods perform I/O, and an out-of-range or unmatched handle
// fails there, at first use, never at narrowing time.
type Capability interface {
	// Locator derives a handle scoped to selector inside this region.
	Locator(selector string) Capability

	// Nth derives a handle bound to position index among the matched
	// elements. No bounds check is performed.
	Nth(index int) Capability

	// First derives a handle bound to position 0.
	First() Capability

	// Last derives a handle bound to the final matched element, resolved
	// lazily at time of use.
	Last() Capability

	// FilterByText narrows to elements whose text contains text.
	FilterByText(text string) Capability

	// FilterHas narrows to elements containing a match for selector.
	FilterHas(selector string) Capability

	// Count queries the live DOM for the number of matched elements.
	Count(ctx context.Context) (int, error)

	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	TextContent(ctx context.Context) (string, error)
	InnerHTML(ctx context.Context) (string, error)
	IsVisible(ctx context.Context) (bool, error)
	GetAttribute(ctx context.Context, name string) (string, error)
	BoundingBox(ctx context.Context) (*entities.Rect, error)
	Evaluate(ctx context.Context, expression string) (any, error)

	// WaitFor blocks until the region reaches state ("visible", "hidden",
	// "attached" or "detached").
	WaitFor(ctx context.Context, state string) error
}

// Navigator is the top-level page handle a page root is constructed with.
type Navigator interface {
	// Goto navigates to url and waits for the page to settle.
	Goto(ctx context.Context, url string) error

	// WaitForLoadState blocks until the page reaches the given load state
	// ("load", "domcontentloaded" or "networkidle").
	WaitForLoadState(ctx context.Context, state string) error

	// Locator derives a capability scoped to selector within the document.
	Locator(selector string) Capability

	URL() string
	Title(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, path string) error
	Close() error
}
