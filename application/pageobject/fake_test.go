package pageobject_test

import (
	"context"
	"fmt"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// fakeCapability is a synchronous stand-in for the automation engine's
// locator. Narrowing only extends the recorded selector path; acting methods
// append to a shared log and fail with a not-found error when the handle
// resolves to zero elements, mirroring the engine's deferred-error behavior.
type fakeCapability struct {
	path    string
	matches int
	// sizes overrides the match count for specific derived paths, so tests
	// can declare how many elements a repeated region holds.
	sizes map[string]int
	log   *[]string
}

func newFakeRegion(path string, matches int, log *[]string) *fakeCapability {
	return &fakeCapability{path: path, matches: matches, log: log}
}

func (f *fakeCapability) derive(path string, fallback int) *fakeCapability {
	matches, ok := f.sizes[path]
	if !ok {
		matches = fallback
	}
	return &fakeCapability{path: path, matches: matches, sizes: f.sizes, log: f.log}
}

func (f *fakeCapability) Locator(selector string) interfaces.Capability {
	return f.derive(f.path+" >> "+selector, 1)
}

func (f *fakeCapability) Nth(index int) interfaces.Capability {
	matches := 0
	if index >= 0 && index < f.matches {
		matches = 1
	}
	return f.derive(fmt.Sprintf("%s[%d]", f.path, index), matches)
}

func (f *fakeCapability) First() interfaces.Capability {
	return f.Nth(0)
}

func (f *fakeCapability) Last() interfaces.Capability {
	matches := 0
	if f.matches > 0 {
		matches = 1
	}
	return f.derive(fmt.Sprintf("%s[%d]", f.path, f.matches-1), matches)
}

func (f *fakeCapability) FilterByText(text string) interfaces.Capability {
	return f.derive(fmt.Sprintf("%s:has-text(%q)", f.path, text), f.matches)
}

func (f *fakeCapability) FilterHas(selector string) interfaces.Capability {
	return f.derive(fmt.Sprintf("%s:has(%s)", f.path, selector), f.matches)
}

func (f *fakeCapability) Count(ctx context.Context) (int, error) {
	return f.matches, nil
}

func (f *fakeCapability) act(verb string) error {
	if f.matches == 0 {
		return fmt.Errorf("element not found: %s", f.path)
	}
	*f.log = append(*f.log, verb+" "+f.path)
	return nil
}

func (f *fakeCapability) Click(ctx context.Context) error { return f.act("click") }

func (f *fakeCapability) Fill(ctx context.Context, text string) error {
	return f.act("fill[" + text + "]")
}

func (f *fakeCapability) TextContent(ctx context.Context) (string, error) {
	if f.matches == 0 {
		return "", fmt.Errorf("element not found: %s", f.path)
	}
	return "text of " + f.path, nil
}

func (f *fakeCapability) InnerHTML(ctx context.Context) (string, error) {
	return "<div>" + f.path + "</div>", nil
}

func (f *fakeCapability) IsVisible(ctx context.Context) (bool, error) {
	return f.matches > 0, nil
}

func (f *fakeCapability) GetAttribute(ctx context.Context, name string) (string, error) {
	return name + "@" + f.path, nil
}

func (f *fakeCapability) BoundingBox(ctx context.Context) (*entities.Rect, error) {
	return &entities.Rect{Width: 100, Height: 20}, nil
}

func (f *fakeCapability) Evaluate(ctx context.Context, expression string) (any, error) {
	return nil, nil
}

func (f *fakeCapability) WaitFor(ctx context.Context, state string) error {
	return f.act("wait-" + state)
}

// fakeNavigator records navigations and load-state waits. Region sizes for
// page-level locators come from regionSizes, keyed by the full derived path;
// unknown paths match one element.
type fakeNavigator struct {
	gotoURLs    []string
	loadStates  []string
	regionSizes map[string]int
	log         []string
}

func newFakeNavigator(regionSizes map[string]int) *fakeNavigator {
	return &fakeNavigator{regionSizes: regionSizes}
}

func (n *fakeNavigator) Goto(ctx context.Context, url string) error {
	n.gotoURLs = append(n.gotoURLs, url)
	return nil
}

func (n *fakeNavigator) WaitForLoadState(ctx context.Context, state string) error {
	n.loadStates = append(n.loadStates, state)
	return nil
}

func (n *fakeNavigator) Locator(selector string) interfaces.Capability {
	matches, ok := n.regionSizes[selector]
	if !ok {
		matches = 1
	}
	return &fakeCapability{path: selector, matches: matches, sizes: n.regionSizes, log: &n.log}
}

func (n *fakeNavigator) URL() string { return "about:blank" }

func (n *fakeNavigator) Title(ctx context.Context) (string, error) { return "fake", nil }

func (n *fakeNavigator) Screenshot(ctx context.Context, path string) error { return nil }

func (n *fakeNavigator) Close() error { return nil }

func testConfig() *entities.SiteConfig {
	return &entities.SiteConfig{
		BaseURL:  "https://acme.test",
		Timeouts: entities.Timeouts{Navigation: 30000, Action: 5000, Assertion: 5000},
	}
}
