package ui

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/MrSnakeDoc/planopro/internal/nav"
)

// Document wraps body nodes in the HTML5 page skeleton.
func Document(title string, body ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("pt-BR"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(title)),
				html.Script(html.Src("https://cdn.tailwindcss.com")),
				html.Link(html.Rel("stylesheet"), html.Href(StylePath)),
				html.Link(html.Rel("icon"), html.Href(LogoIconPath)),
			),
			html.Body(
				html.Class("min-h-screen bg-background text-foreground antialiased"),
				g.Group(body),
			),
		),
	)
}

// LandingProps configures the public landing page.
type LandingProps struct {
	AppName string
}

// LandingPage is the static marketing/login view served at "/".
func LandingPage(p LandingProps) g.Node {
	return Document(p.AppName,
		html.Div(
			html.Class("h-screen w-screen bg-blue-500"),
			html.Nav(
				html.Class("flex bg-slate-100 w-full justify-between items-center p-4"),
				html.Img(
					html.Src(LogoPath),
					html.Alt("Logo"),
					html.Width("100"),
					html.Height("50"),
				),
				html.A(
					html.Href(DefaultPath),
					html.Class("btn bg-blue-500 flex w-32 items-center gap-2 text-white hover:bg-blue-600 duration-200 cursor-pointer"),
					Icon("log-in", "h-4 w-4"),
					g.Text("Log In"),
				),
			),
		),
	)
}

// DashboardPageProps configures a dashboard page rendered inside the shell.
type DashboardPageProps struct {
	ShellProps
}

// DashboardPage renders a dashboard route: the shell around the page body
// of the active menu entry.
func DashboardPage(p DashboardPageProps) g.Node {
	title := p.AppName
	item, ok := p.Menu.Active(p.CurrentPath)
	if ok {
		title = item.Label + " · " + p.AppName
	}

	shell := p.ShellProps
	if shell.Content == nil {
		shell.Content = PageBody(item)
	}

	return Document(title,
		html.Div(
			html.Class("min-h-screen relative"),
			SidebarDashboard(shell),
		),
	)
}

// PageBody is the placeholder content of a dashboard section. The sections
// only exist as navigation targets.
func PageBody(item nav.Item) g.Node {
	return html.Section(
		html.Class("grid gap-2"),
		html.H2(html.Class("text-2xl font-semibold tracking-tight"), g.Text(item.Label)),
		html.P(html.Class("text-sm text-muted-foreground"), g.Text("Nenhum conteúdo disponível ainda.")),
	)
}
