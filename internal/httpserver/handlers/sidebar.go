package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/planopro/internal/domain"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

// Sidebar action names, also used as metric labels.
const (
	ActionCollapse     = "collapse"
	ActionMenuOpen     = "menu_open"
	ActionMenuClose    = "menu_close"
	ActionMenuNavigate = "menu_navigate"
)

// Collapse flips the desktop sidebar between expanded and collapsed.
func Collapse(d deps.Deps) http.HandlerFunc {
	return sidebarAction(d, ActionCollapse, postedTarget, (*domain.SidebarState).ToggleCollapsed)
}

// OpenMenu opens the mobile drawer.
func OpenMenu(d deps.Deps) http.HandlerFunc {
	return sidebarAction(d, ActionMenuOpen, postedTarget, (*domain.SidebarState).OpenMobileMenu)
}

// CloseMenu closes the mobile drawer.
func CloseMenu(d deps.Deps) http.HandlerFunc {
	return sidebarAction(d, ActionMenuClose, postedTarget, (*domain.SidebarState).CloseMobileMenu)
}

// NavigateFromMenu closes the drawer and then goes to the picked link.
func NavigateFromMenu(d deps.Deps) http.HandlerFunc {
	return sidebarAction(d, ActionMenuNavigate, func(r *http.Request) string {
		return r.URL.Query().Get(ui.NavigateTargetKey)
	}, (*domain.SidebarState).CloseMobileMenu)
}

func postedTarget(r *http.Request) string {
	return r.PostFormValue(ui.ReturnField)
}

// sidebarAction applies one state change to the session's sidebar and
// redirects. When the current state cannot be read the change is dropped,
// since saving it would overwrite what is stored with a guess.
func sidebarAction(
	d deps.Deps,
	action string,
	target func(*http.Request) string,
	apply func(*domain.SidebarState),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dest := safeTarget(d, target(r))

		id, state, err := loadState(r.Context(), d)
		switch {
		case id == "":
		case err != nil:
			d.Logger.Warn("sidebar action dropped", logger.String("action", action))
		default:
			apply(&state)
			if err := d.Store.Save(r.Context(), id, state); err != nil {
				d.Logger.Warn("failed to save sidebar state",
					logger.String("action", action),
					logger.Error(err))
			}
		}

		d.Metrics.SidebarAction(action)
		http.Redirect(w, r, dest, http.StatusSeeOther)
	}
}
