package ui

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"github.com/MrSnakeDoc/planopro/internal/nav"
)

// NavLinksProps configures a rendered navigation list.
type NavLinksProps struct {
	Menu        nav.Menu
	CurrentPath string
	Collapsed   bool

	// OnLinkClick, when set, maps each link's href to the URL the anchor
	// targets. The drawer uses it to close itself before navigating.
	OnLinkClick func(href string) string
}

// NavLinks renders the menu in order. Titles and separators are dropped
// when collapsed.
func NavLinks(p NavLinksProps) g.Node {
	entries := make([]g.Node, 0, len(p.Menu))

	for _, item := range p.Menu {
		switch item.Kind {
		case nav.KindTitle:
			if p.Collapsed {
				continue
			}
			entries = append(entries, html.H3(
				html.Class("px-3 mt-4 mb-2 text-xs font-semibold uppercase text-muted-foreground"),
				g.Text(item.Label),
			))
		case nav.KindSeparator:
			if p.Collapsed {
				continue
			}
			entries = append(entries, html.Hr(html.Class("my-2")))
		case nav.KindLink:
			entries = append(entries, SidebarLink(SidebarLinkProps{
				Href:        item.Href,
				Label:       item.Label,
				Icon:        item.Icon,
				CurrentPath: p.CurrentPath,
				Collapsed:   p.Collapsed,
				OnClick:     p.OnLinkClick,
			}))
		}
	}

	return html.Nav(
		c.Classes{
			"grid items-start gap-1 px-2 text-sm font-medium": true,
			"px-0 justify-center":                             p.Collapsed,
		},
		g.Group(entries),
	)
}

// SidebarLinkProps configures a single navigation link.
type SidebarLinkProps struct {
	Href        string
	Label       string
	Icon        string
	CurrentPath string
	Collapsed   bool
	OnClick     func(href string) string
}

// SidebarLink renders one navigation anchor. The icon is always present,
// the label only when expanded.
func SidebarLink(p SidebarLinkProps) g.Node {
	active := nav.IsActive(p.CurrentPath, p.Href)

	target := p.Href
	if p.OnClick != nil {
		target = p.OnClick(p.Href)
	}

	return html.A(
		html.Href(target),
		c.Classes{
			"flex items-center gap-3 rounded-lg px-3 py-2 text-muted-foreground transition-all hover:text-primary": true,
			"bg-muted text-primary font-semibold": active,
			"justify-center":                      p.Collapsed,
		},
		g.If(active, html.Aria("current", "page")),
		g.If(p.Collapsed, html.Aria("label", p.Label)),
		Icon(p.Icon, "h-5 w-5"),
		g.If(!p.Collapsed, html.Span(
			html.Class("overflow-hidden transition-all duration-300"),
			g.Text(p.Label),
		)),
	)
}
