package domain

// SidebarState is the transient UI state owned by the dashboard shell.
//
// The zero value is the initial state: expanded sidebar, drawer closed.
// It is only ever changed by an explicit user action.
type SidebarState struct {
	// Collapsed switches the desktop sidebar to its narrow, icon-only mode.
	Collapsed bool `json:"collapsed"`

	// MobileMenuOpen shows the slide-in drawer on narrow viewports.
	MobileMenuOpen bool `json:"mobile_menu_open"`
}

// ToggleCollapsed flips between the expanded and collapsed sidebar.
func (s *SidebarState) ToggleCollapsed() { s.Collapsed = !s.Collapsed }

// OpenMobileMenu opens the drawer.
func (s *SidebarState) OpenMobileMenu() { s.MobileMenuOpen = true }

// CloseMobileMenu closes the drawer. Picking any link inside it does this.
func (s *SidebarState) CloseMobileMenu() { s.MobileMenuOpen = false }

// IsZero reports whether the state equals the initial state.
func (s SidebarState) IsZero() bool { return s == SidebarState{} }
