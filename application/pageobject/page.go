package pageobject

import (
	"context"
	"strings"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// documentSelector is the scope page-level bindings are resolved against.
const documentSelector = "html"

// ReadyWaiter lets a page type override the readiness check Goto runs after
// navigation. The default waits for the network-idle signal.
type ReadyWaiter interface {
	WaitForReady(ctx context.Context) error
}

// Page is a Scoped component additionally bound to a navigable route and the
// top-level navigation handle. Constructing a Page materializes its entire
// declared child graph (collections stay lazy); no navigation happens until
// Goto.
type Page struct {
	Scoped
	nav   interfaces.Navigator
	owner any
}

// NewPage binds a page root. owner is the concrete page under construction,
// given so its exact runtime type selects both the child bindings and the
// registered route:
//
//	type LoginPage struct{ pageobject.Page }
//
//	func NewLoginPage(nav interfaces.Navigator, cfg *entities.SiteConfig) *LoginPage {
//		p := &LoginPage{}
//		p.Page = pageobject.NewPage(p, nav, cfg)
//		return p
//	}
func NewPage(owner any, nav interfaces.Navigator, cfg *entities.SiteConfig) Page {
	return Page{
		Scoped: NewScoped(owner, nav.Locator(documentSelector), cfg, nav),
		nav:    nav,
		owner:  owner,
	}
}

// Navigator returns the top-level page handle.
func (p *Page) Navigator() interfaces.Navigator { return p.nav }

// Goto navigates to the site's base URL joined with the page's registered
// route, then runs the readiness check: the owner's WaitForReady when it has
// one, otherwise a network-idle wait. A page type with no registered route is
// a configuration error, reported here rather than at construction, naming
// the type.
func (p *Page) Goto(ctx context.Context) error {
	route, ok := RouteOf(p.owner)
	if !ok {
		return &entities.MissingRouteError{Class: keyOf(p.owner).String()}
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + route
	if err := p.nav.Goto(ctx, url); err != nil {
		return err
	}

	if waiter, ok := p.owner.(ReadyWaiter); ok {
		return waiter.WaitForReady(ctx)
	}
	return p.nav.WaitForLoadState(ctx, "networkidle")
}
