package ui

import "net/url"

// Paths the shell links and posts to. The HTTP layer mounts its handlers on
// these same constants.
const (
	HomePath    = "/"
	DefaultPath = "/dashboard"

	CollapsePath      = "/dashboard/sidebar/collapse"
	MenuOpenPath      = "/dashboard/sidebar/menu/open"
	MenuClosePath     = "/dashboard/sidebar/menu/close"
	MenuNavigatePath  = "/dashboard/sidebar/menu/go"
	ReturnField       = "return"
	NavigateTargetKey = "to"

	LogoPath     = "/logo-width.png"
	LogoIconPath = "/logo-icon.png"
	StylePath    = "/static/app.css"
)

// CloseDrawerThen routes a drawer link through the close action, which then
// redirects to href. It is the drawer's OnLinkClick.
func CloseDrawerThen(href string) string {
	return MenuNavigatePath + "?" + url.Values{NavigateTargetKey: {href}}.Encode()
}
