package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/MrSnakeDoc/planopro/internal/assets"
	"github.com/MrSnakeDoc/planopro/internal/config"
	"github.com/MrSnakeDoc/planopro/internal/domain"
	"github.com/MrSnakeDoc/planopro/internal/httpserver"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/metrics"
	"github.com/MrSnakeDoc/planopro/internal/nav"
	"github.com/MrSnakeDoc/planopro/internal/session"
	"github.com/MrSnakeDoc/planopro/internal/store"
	"github.com/MrSnakeDoc/planopro/internal/store/memory"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

var testSecret = strings.Repeat("planopro-test-secret-", 4)

type failingStore struct{}

var errDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (domain.SidebarState, error) {
	return domain.SidebarState{}, errDown
}
func (failingStore) Save(context.Context, string, domain.SidebarState) error { return errDown }
func (failingStore) Delete(context.Context, string) error                    { return errDown }
func (failingStore) Ping(context.Context) error                              { return errDown }
func (failingStore) Active(context.Context) (int, error)                     { return 0, errDown }

var _ store.StateStore = failingStore{}

// unreadableStore fails reads but accepts writes.
type unreadableStore struct {
	*memory.Store
	saves atomic.Int32
}

func (s *unreadableStore) Get(context.Context, string) (domain.SidebarState, error) {
	return domain.SidebarState{}, errDown
}

func (s *unreadableStore) Save(ctx context.Context, id string, state domain.SidebarState) error {
	s.saves.Add(1)
	return s.Store.Save(ctx, id, state)
}

func testDeps(t *testing.T, mutate ...func(*deps.Deps)) deps.Deps {
	t.Helper()

	sessions, err := session.NewManager(testSecret, "planopro_session", 30*time.Minute, false)
	require.NoError(t, err)
	set, err := assets.Load()
	require.NoError(t, err)

	d := deps.Deps{
		Logger:     logger.NewNop(),
		StartTime:  time.Now(),
		Version:    "test",
		AppName:    "PlanoPro",
		Menu:       nav.Default(),
		Store:      memory.New(),
		StoreMode:  deps.StoreModeMemory,
		Sessions:   sessions,
		Assets:     set,
		Metrics:    metrics.New(),
		RateBurst:  30,
		RatePerMin: 120,
	}
	for _, m := range mutate {
		m(&d)
	}
	return d
}

// browser is a test client that keeps cookies and follows redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, mutate ...func(*deps.Deps)) *browser {
	t.Helper()

	d := testDeps(t, mutate...)
	srv := httpserver.New(&config.Config{ListenPort: ":0"}, d.Logger, d)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{t: t, base: ts.URL, client: &http.Client{Jar: jar}}
}

// noFollow returns a client sharing the cookie jar that stops at redirects.
func (b *browser) noFollow() *http.Client {
	return &http.Client{
		Jar: b.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type page struct {
	status int
	path   string
	body   string
	doc    *xhtml.Node
}

func (b *browser) read(resp *http.Response, err error) page {
	b.t.Helper()
	require.NoError(b.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	p := page{status: resp.StatusCode, path: resp.Request.URL.Path, body: string(raw)}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		p.doc, err = xhtml.Parse(strings.NewReader(p.body))
		require.NoError(b.t, err)
	}
	return p
}

func (b *browser) get(path string) page {
	b.t.Helper()
	return b.read(b.client.Get(b.base + path))
}

func (b *browser) post(action, returnTo string) page {
	b.t.Helper()
	return b.read(b.client.PostForm(b.base+action, url.Values{ui.ReturnField: {returnTo}}))
}

func findAll(root *xhtml.Node, match func(*xhtml.Node) bool) []*xhtml.Node {
	var out []*xhtml.Node
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *xhtml.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(key, val string) func(*xhtml.Node) bool {
	return func(n *xhtml.Node) bool {
		v, ok := attr(n, key)
		return n.Type == xhtml.ElementNode && ok && (val == "" || v == val)
	}
}

func tag(name string) func(*xhtml.Node) bool {
	return func(n *xhtml.Node) bool { return n.Type == xhtml.ElementNode && n.Data == name }
}

func aside(t *testing.T, p page) *xhtml.Node {
	t.Helper()
	asides := findAll(p.doc, tag("aside"))
	require.Len(t, asides, 1)
	return asides[0]
}

func TestLandingPage(t *testing.T) {
	b := newBrowser(t)

	p := b.get("/")
	require.Equal(t, http.StatusOK, p.status)

	login := findAll(p.doc, hasAttr("href", ui.DefaultPath))
	require.Len(t, login, 1)
	assert.Contains(t, p.body, "Log In")
	assert.Len(t, findAll(p.doc, hasAttr("src", ui.LogoPath)), 1)
}

func TestEveryMenuRouteMarksOnlyItsLinkActive(t *testing.T) {
	b := newBrowser(t)

	for _, link := range nav.Default().Links() {
		t.Run(link.Href, func(t *testing.T) {
			p := b.get(link.Href)
			require.Equal(t, http.StatusOK, p.status)

			active := findAll(aside(t, p), hasAttr("aria-current", "page"))
			require.Len(t, active, 1)

			href, _ := attr(active[0], "href")
			assert.Equal(t, link.Href, href)
			assert.Contains(t, p.body, "<title>"+link.Label+" · PlanoPro</title>")
		})
	}
}

func TestUnknownAndTrailingSlashRoutes(t *testing.T) {
	b := newBrowser(t)

	assert.Equal(t, http.StatusNotFound, b.get("/dashboard/unknown").status)

	resp, err := b.noFollow().Get(b.base + "/dashboard/services/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.True(t, strings.HasSuffix(resp.Header.Get("Location"), "/dashboard/services"), resp.Header.Get("Location"))
}

func TestCollapseRoundTrip(t *testing.T) {
	b := newBrowser(t)

	before := b.get("/dashboard/services")
	collapsedAttr, _ := attr(aside(t, before), "data-collapsed")
	assert.Equal(t, "false", collapsedAttr)

	collapsed := b.post(ui.CollapsePath, "/dashboard/services")
	require.Equal(t, http.StatusOK, collapsed.status)
	assert.Equal(t, "/dashboard/services", collapsed.path)

	side := aside(t, collapsed)
	collapsedAttr, _ = attr(side, "data-collapsed")
	assert.Equal(t, "true", collapsedAttr)
	assert.Empty(t, findAll(side, tag("h3")))
	assert.Empty(t, findAll(side, tag("hr")))
	assert.Len(t, findAll(side, hasAttr("aria-label", "Expandir menu")), 1)
	assert.Len(t, findAll(side, hasAttr("src", ui.LogoIconPath)), 1)

	navs := findAll(side, tag("nav"))
	require.Len(t, navs, 1)
	assert.Empty(t, findAll(navs[0], tag("span")), "collapsed links render no labels")
	assert.Len(t, findAll(navs[0], tag("svg")), len(nav.Default().Links()))

	after := b.post(ui.CollapsePath, "/dashboard/services")
	assert.Equal(t, before.body, after.body)
}

func TestDrawerOpenAndNavigate(t *testing.T) {
	b := newBrowser(t)

	closed := b.get("/dashboard")
	assert.Empty(t, findAll(closed.doc, hasAttr("id", "mobile-menu")))
	assert.Len(t, findAll(closed.doc, hasAttr("aria-expanded", "false")), 1)

	open := b.post(ui.MenuOpenPath, "/dashboard")
	drawers := findAll(open.doc, hasAttr("id", "mobile-menu"))
	require.Len(t, drawers, 1)
	assert.Len(t, findAll(open.doc, hasAttr("aria-expanded", "true")), 1)
	assert.Contains(t, open.body, "Menu de Navegação")

	target := ui.CloseDrawerThen("/dashboard/plans")
	links := findAll(drawers[0], hasAttr("href", target))
	require.Len(t, links, 1)

	landed := b.get(target)
	assert.Equal(t, "/dashboard/plans", landed.path)
	assert.Empty(t, findAll(landed.doc, hasAttr("id", "mobile-menu")))

	active := findAll(aside(t, landed), hasAttr("aria-current", "page"))
	require.Len(t, active, 1)
	href, _ := attr(active[0], "href")
	assert.Equal(t, "/dashboard/plans", href)
}

func TestDrawerCloseAction(t *testing.T) {
	b := newBrowser(t)

	b.post(ui.MenuOpenPath, "/dashboard/profile")
	p := b.post(ui.MenuClosePath, "/dashboard/profile")

	assert.Equal(t, "/dashboard/profile", p.path)
	assert.Empty(t, findAll(p.doc, hasAttr("id", "mobile-menu")))
}

func TestUnsafeTargetsFallBackToDashboard(t *testing.T) {
	b := newBrowser(t)
	client := b.noFollow()

	for _, target := range []string{"https://evil.example/", "//evil.example", "/dashboard/unknown", ""} {
		resp, err := client.PostForm(b.base+ui.CollapsePath, url.Values{ui.ReturnField: {target}})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, target)
		assert.Equal(t, ui.DefaultPath, resp.Header.Get("Location"), target)

		resp, err = client.Get(b.base + ui.MenuNavigatePath + "?" + url.Values{ui.NavigateTargetKey: {target}}.Encode())
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, ui.DefaultPath, resp.Header.Get("Location"), target)
	}

	resp, err := client.PostForm(b.base+ui.MenuClosePath, url.Values{ui.ReturnField: {ui.HomePath}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, ui.HomePath, resp.Header.Get("Location"))
}

func TestVisitingLandingDiscardsState(t *testing.T) {
	b := newBrowser(t)

	collapsed := b.post(ui.CollapsePath, "/dashboard")
	v, _ := attr(aside(t, collapsed), "data-collapsed")
	require.Equal(t, "true", v)

	b.get("/")

	fresh := b.get("/dashboard")
	v, _ = attr(aside(t, fresh), "data-collapsed")
	assert.Equal(t, "false", v)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newBrowser(t)
	a.post(ui.CollapsePath, "/dashboard")

	other := &browser{t: t, base: a.base}
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other.client = &http.Client{Jar: jar}

	v, _ := attr(aside(t, other.get("/dashboard")), "data-collapsed")
	assert.Equal(t, "false", v)
}

func TestStoreFailureDegradesGracefully(t *testing.T) {
	b := newBrowser(t, func(d *deps.Deps) { d.Store = failingStore{} })

	p := b.get("/dashboard")
	assert.Equal(t, http.StatusOK, p.status)

	p = b.post(ui.CollapsePath, "/dashboard/services")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "/dashboard/services", p.path)
	v, _ := attr(aside(t, p), "data-collapsed")
	assert.Equal(t, "false", v)

	assert.Equal(t, http.StatusOK, b.get("/").status)
	assert.Equal(t, http.StatusServiceUnavailable, b.get("/readyz").status)

	infra := b.get("/infra")
	assert.Contains(t, infra.body, `"mode":"degraded"`)
}

func TestActionsDoNotOverwriteUnreadableState(t *testing.T) {
	st := &unreadableStore{Store: memory.New()}
	b := newBrowser(t, func(d *deps.Deps) { d.Store = st })

	b.get("/dashboard")
	for _, action := range []string{ui.CollapsePath, ui.MenuOpenPath, ui.MenuClosePath} {
		p := b.post(action, "/dashboard/services")
		assert.Equal(t, http.StatusOK, p.status, action)
		assert.Equal(t, "/dashboard/services", p.path, action)
	}
	b.get(ui.CloseDrawerThen("/dashboard"))

	assert.Zero(t, st.saves.Load())
	assert.Zero(t, st.Count())
}

func TestOpsEndpoints(t *testing.T) {
	b := newBrowser(t)

	health := b.get("/healthz")
	assert.Equal(t, http.StatusOK, health.status)
	assert.Contains(t, health.body, `"status":"ok"`)

	ready := b.get("/readyz")
	assert.Equal(t, http.StatusOK, ready.status)
	assert.Contains(t, ready.body, `"store":"memory"`)

	infra := b.get("/infra")
	assert.Contains(t, infra.body, `"mode":"ok"`)
	assert.Contains(t, infra.body, `"sessions":0`)

	b.post(ui.MenuOpenPath, "/dashboard")
	assert.Contains(t, b.get("/infra").body, `"sessions":1`)

	m := b.get("/metrics")
	assert.Equal(t, http.StatusOK, m.status)
	assert.Contains(t, m.body, `planopro_ui_sidebar_actions_total{action="menu_open"} 1`)
	assert.Contains(t, m.body, `planopro_ui_page_renders_total{route="/dashboard"} 1`)
}

func TestOpsEndpointsRestrictedByCIDR(t *testing.T) {
	b := newBrowser(t, func(d *deps.Deps) { d.AllowedCIDRS = []string{"10.0.0.0/8"} })

	for _, path := range []string{"/healthz", "/readyz", "/infra", "/metrics"} {
		assert.Equal(t, http.StatusForbidden, b.get(path).status, path)
	}
	assert.Equal(t, http.StatusOK, b.get("/dashboard").status)
}

func TestHostEnforcement(t *testing.T) {
	b := newBrowser(t, func(d *deps.Deps) { d.AllowedHosts = []string{"planopro.example"} })

	assert.Equal(t, http.StatusForbidden, b.get("/").status)
	assert.Equal(t, http.StatusForbidden, b.get("/dashboard").status)

	req, err := http.NewRequest(http.MethodGet, b.base+"/dashboard", nil)
	require.NoError(t, err)
	req.Host = "planopro.example"
	assert.Equal(t, http.StatusOK, b.read(b.client.Do(req)).status)
}

func TestSidebarActionsAreRateLimited(t *testing.T) {
	b := newBrowser(t, func(d *deps.Deps) {
		d.RateBurst = 2
		d.RatePerMin = 1
	})
	b.get("/dashboard") // obtain a session

	collapse := func(c *http.Client) int {
		resp, err := c.PostForm(b.base+ui.CollapsePath, url.Values{ui.ReturnField: {"/dashboard"}})
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	client := b.noFollow()
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, collapse(client))
	}
	assert.Equal(t, []int{http.StatusSeeOther, http.StatusSeeOther, http.StatusTooManyRequests}, codes)

	// Another visitor from the same address has a bucket of their own.
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	assert.Equal(t, http.StatusSeeOther, collapse(other))

	assert.Contains(t, b.get("/metrics").body, "planopro_http_rate_limited_total 1")
}

func TestAssetsServed(t *testing.T) {
	b := newBrowser(t)

	for path, contentType := range map[string]string{
		ui.LogoPath:     "image/png",
		ui.LogoIconPath: "image/png",
		ui.StylePath:    "text/css; charset=utf-8",
	} {
		resp, err := b.client.Get(b.base + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, contentType, resp.Header.Get("Content-Type"), path)
	}
}
