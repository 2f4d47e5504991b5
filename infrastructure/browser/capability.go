package browser

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// locatorCapability adapts a playwright locator to the Capability interface.
// Playwright locators are lazy by design, so narrowing stays inert and the
// configured timeouts are only consulted by the acting methods. The context
// parameters satisfy the interface; playwright-go drives its own protocol
// loop and does not accept one.
type locatorCapability struct {
	loc      playwright.Locator
	timeouts entities.Timeouts
}

func wrapLocator(loc playwright.Locator, timeouts entities.Timeouts) interfaces.Capability {
	return &locatorCapability{loc: loc, timeouts: timeouts}
}

func (l *locatorCapability) Locator(selector string) interfaces.Capability {
	return wrapLocator(l.loc.Locator(selector), l.timeouts)
}

func (l *locatorCapability) Nth(index int) interfaces.Capability {
	return wrapLocator(l.loc.Nth(index), l.timeouts)
}

func (l *locatorCapability) First() interfaces.Capability {
	return wrapLocator(l.loc.First(), l.timeouts)
}

func (l *locatorCapability) Last() interfaces.Capability {
	return wrapLocator(l.loc.Last(), l.timeouts)
}

func (l *locatorCapability) FilterByText(text string) interfaces.Capability {
	return wrapLocator(l.loc.Filter(playwright.LocatorFilterOptions{
		HasText: text,
	}), l.timeouts)
}

func (l *locatorCapability) FilterHas(selector string) interfaces.Capability {
	return wrapLocator(l.loc.Filter(playwright.LocatorFilterOptions{
		Has: l.loc.Locator(selector),
	}), l.timeouts)
}

func (l *locatorCapability) Count(ctx context.Context) (int, error) {
	return l.loc.Count()
}

func (l *locatorCapability) Click(ctx context.Context) error {
	return l.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(l.timeouts.Action),
	})
}

func (l *locatorCapability) Fill(ctx context.Context, text string) error {
	return l.loc.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(l.timeouts.Action),
	})
}

func (l *locatorCapability) TextContent(ctx context.Context) (string, error) {
	return l.loc.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(l.timeouts.Action),
	})
}

func (l *locatorCapability) InnerHTML(ctx context.Context) (string, error) {
	return l.loc.InnerHTML(playwright.LocatorInnerHTMLOptions{
		Timeout: playwright.Float(l.timeouts.Action),
	})
}

func (l *locatorCapability) IsVisible(ctx context.Context) (bool, error) {
	return l.loc.IsVisible()
}

func (l *locatorCapability) GetAttribute(ctx context.Context, name string) (string, error) {
	return l.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(l.timeouts.Action),
	})
}

func (l *locatorCapability) BoundingBox(ctx context.Context) (*entities.Rect, error) {
	box, err := l.loc.BoundingBox()
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, nil
	}
	return &entities.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (l *locatorCapability) Evaluate(ctx context.Context, expression string) (any, error) {
	return l.loc.Evaluate(expression, nil)
}

func (l *locatorCapability) WaitFor(ctx context.Context, state string) error {
	return l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   waitForState(state),
		Timeout: playwright.Float(l.timeouts.Assertion),
	})
}

func waitForState(state string) *playwright.WaitForSelectorState {
	switch state {
	case "hidden":
		return playwright.WaitForSelectorStateHidden
	case "attached":
		return playwright.WaitForSelectorStateAttached
	case "detached":
		return playwright.WaitForSelectorStateDetached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

// pageNavigator adapts a playwright page to the Navigator interface.
type pageNavigator struct {
	page     playwright.Page
	timeouts entities.Timeouts
}

// NewNavigator wraps an existing playwright page with the configured
// timeouts. Session management stays with the caller.
func NewNavigator(page playwright.Page, cfg *entities.SiteConfig) interfaces.Navigator {
	return &pageNavigator{page: page, timeouts: cfg.Timeouts}
}

func (p *pageNavigator) Goto(ctx context.Context, url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(p.timeouts.Navigation),
	})
	return err
}

func (p *pageNavigator) WaitForLoadState(ctx context.Context, state string) error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: playwright.Float(p.timeouts.Navigation),
	})
}

func loadState(state string) *playwright.LoadState {
	switch state {
	case "load":
		return playwright.LoadStateLoad
	case "domcontentloaded":
		return playwright.LoadStateDomcontentloaded
	default:
		return playwright.LoadStateNetworkidle
	}
}

func (p *pageNavigator) Locator(selector string) interfaces.Capability {
	return wrapLocator(p.page.Locator(selector), p.timeouts)
}

func (p *pageNavigator) URL() string {
	return p.page.URL()
}

func (p *pageNavigator) Title(ctx context.Context) (string, error) {
	return p.page.Title()
}

func (p *pageNavigator) Screenshot(ctx context.Context, path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *pageNavigator) Close() error {
	return p.page.Close()
}
