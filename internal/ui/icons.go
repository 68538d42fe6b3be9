package ui

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/MrSnakeDoc/planopro/internal/nav"
)

// iconPaths holds the inner markup of the Lucide icons used by the shell.
var iconPaths = map[string]string{
	"calendar-check-2": `<path d="M8 2v4"/><path d="M16 2v4"/><path d="M21 14V6a2 2 0 0 0-2-2H5a2 2 0 0 0-2 2v14a2 2 0 0 0 2 2h8"/><path d="M3 10h18"/><path d="m16 20 2 2 4-4"/>`,
	"folder":           `<path d="M20 20a2 2 0 0 0 2-2V8a2 2 0 0 0-2-2h-7.9a2 2 0 0 1-1.69-.9L9.6 3.9A2 2 0 0 0 7.93 3H4a2 2 0 0 0-2 2v13a2 2 0 0 0 2 2Z"/>`,
	"settings":         `<path d="M12.22 2h-.44a2 2 0 0 0-2 2v.18a2 2 0 0 1-1 1.73l-.43.25a2 2 0 0 1-2 0l-.15-.08a2 2 0 0 0-2.73.73l-.22.38a2 2 0 0 0 .73 2.73l.15.1a2 2 0 0 1 1 1.72v.51a2 2 0 0 1-1 1.74l-.15.09a2 2 0 0 0-.73 2.73l.22.38a2 2 0 0 0 2.73.73l.15-.08a2 2 0 0 1 2 0l.43.25a2 2 0 0 1 1 1.73V20a2 2 0 0 0 2 2h.44a2 2 0 0 0 2-2v-.18a2 2 0 0 1 1-1.73l.43-.25a2 2 0 0 1 2 0l.15.08a2 2 0 0 0 2.73-.73l.22-.39a2 2 0 0 0-.73-2.73l-.15-.08a2 2 0 0 1-1-1.74v-.5a2 2 0 0 1 1-1.74l.15-.09a2 2 0 0 0 .73-2.73l-.22-.38a2 2 0 0 0-2.73-.73l-.15.08a2 2 0 0 1-2 0l-.43-.25a2 2 0 0 1-1-1.73V4a2 2 0 0 0-2-2z"/><circle cx="12" cy="12" r="3"/>`,
	"banknote":         `<rect width="20" height="12" x="2" y="6" rx="2"/><circle cx="12" cy="12" r="2"/><path d="M6 12h.01M18 12h.01"/>`,
	"chevron-left":     `<path d="m15 18-6-6 6-6"/>`,
	"chevron-right":    `<path d="m9 18 6-6-6-6"/>`,
	"list":             `<path d="M3 12h.01"/><path d="M3 18h.01"/><path d="M3 6h.01"/><path d="M8 12h13"/><path d="M8 18h13"/><path d="M8 6h13"/>`,
	"log-in":           `<path d="M15 3h4a2 2 0 0 1 2 2v14a2 2 0 0 1-2 2h-4"/><polyline points="10 17 15 12 10 7"/><line x1="15" x2="3" y1="12" y2="12"/>`,
	"x":                `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
}

// HasIcon reports whether name is a known icon identifier.
func HasIcon(name string) bool {
	_, ok := iconPaths[name]
	return ok
}

// UnknownIcons returns the menu links whose icon would render as the
// placeholder.
func UnknownIcons(m nav.Menu) []nav.Item {
	var out []nav.Item
	for _, item := range m.Links() {
		if !HasIcon(item.Icon) {
			out = append(out, item)
		}
	}
	return out
}

// Icon renders an inline SVG icon. Unknown names render a dot placeholder so
// a typo in the menu never breaks the page.
func Icon(name, class string) g.Node {
	inner, ok := iconPaths[name]
	if !ok {
		return html.Span(
			html.Class("inline-flex items-center justify-center text-xs "+class),
			g.Attr("data-icon", name),
			g.Text("•"),
		)
	}

	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		g.Attr("aria-hidden", "true"),
		g.Attr("data-icon", name),
		html.Class(class),
		g.Raw(inner),
	)
}
