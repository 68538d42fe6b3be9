package ui

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"github.com/MrSnakeDoc/planopro/internal/domain"
	"github.com/MrSnakeDoc/planopro/internal/nav"
)

// ShellProps is everything the dashboard shell needs to render one request.
type ShellProps struct {
	AppName     string
	Menu        nav.Menu
	CurrentPath string
	State       domain.SidebarState
	Content     g.Node
}

// SidebarDashboard renders the desktop sidebar, the mobile header with its
// drawer, and the main column holding Content.
func SidebarDashboard(p ShellProps) g.Node {
	collapsed := p.State.Collapsed

	return html.Div(
		html.Class("flex min-h-screen w-full bg-muted/40"),
		desktopSidebar(p),
		html.Div(
			c.Classes{
				"flex flex-1 flex-col transition-all duration-300": true,
				"md:ml-20": collapsed,
				"md:ml-64": !collapsed,
			},
			mobileHeader(p),
			html.Main(
				html.Class("flex-1 p-4 sm:p-6"),
				html.ID("content"),
				p.Content,
			),
		),
	)
}

func desktopSidebar(p ShellProps) g.Node {
	collapsed := p.State.Collapsed

	return html.Aside(
		c.Classes{
			"hidden md:flex flex-col border-r bg-background transition-all duration-300 fixed h-full": true,
			"w-20": collapsed,
			"w-64": !collapsed,
		},
		g.Attr("data-collapsed", boolAttr(collapsed)),
		html.Div(
			html.Class("flex h-14 items-center border-b px-4 lg:h-[60px] lg:px-6"),
			html.A(
				html.Href(DefaultPath),
				html.Class("flex items-center gap-2 font-semibold"),
				logo(collapsed),
			),
		),
		html.Div(
			html.Class("flex-1 overflow-auto py-4"),
			NavLinks(NavLinksProps{
				Menu:        p.Menu,
				CurrentPath: p.CurrentPath,
				Collapsed:   collapsed,
			}),
		),
		html.Div(
			html.Class("mt-auto border-t p-4"),
			collapseToggle(p.CurrentPath, collapsed),
		),
	)
}

func logo(collapsed bool) g.Node {
	if collapsed {
		return html.Img(
			html.Src(LogoIconPath),
			html.Alt("Ícone PlanoPRO"),
			html.Class("h-8 w-8"),
		)
	}
	return html.Img(
		html.Src(LogoPath),
		html.Alt("Logo Completa PlanoPRO"),
		html.Class("h-8 w-auto transition-all duration-300"),
	)
}

func collapseToggle(currentPath string, collapsed bool) g.Node {
	label, icon := "Recolher menu", "chevron-left"
	if collapsed {
		label, icon = "Expandir menu", "chevron-right"
	}

	return actionForm(CollapsePath, currentPath,
		html.Button(
			html.Type("submit"),
			html.Class("btn btn-ghost btn-icon w-full justify-center md:justify-start"),
			html.Aria("label", label),
			Icon(icon, "h-5 w-5"),
		),
	)
}

func mobileHeader(p ShellProps) g.Node {
	return html.Header(
		html.Class("sticky top-0 z-10 flex h-14 items-center gap-4 border-b bg-background px-4 sm:h-[60px] sm:px-6 md:hidden"),
		actionForm(MenuOpenPath, p.CurrentPath,
			html.Button(
				html.Type("submit"),
				html.Class("btn btn-outline btn-icon shrink-0"),
				html.Aria("label", "Abrir menu"),
				html.Aria("expanded", boolAttr(p.State.MobileMenuOpen)),
				html.Aria("controls", "mobile-menu"),
				Icon("list", "h-5 w-5"),
			),
		),
		html.H1(html.Class("text-lg font-semibold"), g.Text("Dashboard")),
		g.If(p.State.MobileMenuOpen, drawer(p)),
	)
}

// drawer is the slide-in sheet. It is only rendered while open.
func drawer(p ShellProps) g.Node {
	return html.Div(
		html.ID("mobile-menu"),
		html.Class("sheet fixed inset-0 z-50 md:hidden"),
		html.Role("dialog"),
		html.Aria("modal", "true"),
		html.Aria("labelledby", "mobile-menu-title"),
		actionForm(MenuClosePath, p.CurrentPath,
			html.Button(
				html.Type("submit"),
				html.Class("sheet-overlay fixed inset-0 bg-black/80"),
				html.Aria("label", "Fechar menu"),
			),
		),
		html.Div(
			html.Class("sheet-content fixed inset-y-0 left-0 flex h-full w-3/4 flex-col gap-4 border-r bg-background p-6 sm:max-w-sm"),
			html.H2(html.ID("mobile-menu-title"), html.Class("mt-3 text-lg font-semibold"), g.Text(p.AppName)),
			html.P(html.Class("text-sm text-muted-foreground"), g.Text("Menu de Navegação")),
			actionForm(MenuClosePath, p.CurrentPath,
				html.Button(
					html.Type("submit"),
					html.Class("absolute right-4 top-4 opacity-70 hover:opacity-100"),
					html.Aria("label", "Fechar menu"),
					Icon("x", "h-4 w-4"),
				),
			),
			NavLinks(NavLinksProps{
				Menu:        p.Menu,
				CurrentPath: p.CurrentPath,
				Collapsed:   false,
				OnLinkClick: CloseDrawerThen,
			}),
		),
	)
}

// actionForm wraps a control in a POST form that returns to currentPath.
func actionForm(action, currentPath string, control g.Node) g.Node {
	return html.Form(
		html.Method("post"),
		html.Action(action),
		html.Input(html.Type("hidden"), html.Name(ReturnField), html.Value(currentPath)),
		control,
	)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
