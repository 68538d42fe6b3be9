package domain

import "testing"

func TestSidebarStateInitial(t *testing.T) {
	var s SidebarState
	if s.Collapsed || s.MobileMenuOpen {
		t.Errorf("zero SidebarState = %+v, want both flags false", s)
	}
	if !s.IsZero() {
		t.Error("zero SidebarState should report IsZero")
	}
}

func TestSidebarStateToggleRoundTrip(t *testing.T) {
	var s SidebarState

	s.ToggleCollapsed()
	if !s.Collapsed {
		t.Fatal("ToggleCollapsed() from expanded should collapse")
	}

	s.ToggleCollapsed()
	if s.Collapsed {
		t.Fatal("ToggleCollapsed() twice should expand again")
	}
	if !s.IsZero() {
		t.Errorf("round trip should restore initial state, got %+v", s)
	}
}

func TestSidebarStateMobileMenu(t *testing.T) {
	var s SidebarState

	s.OpenMobileMenu()
	if !s.MobileMenuOpen {
		t.Fatal("OpenMobileMenu() should open the drawer")
	}

	// Opening twice keeps it open.
	s.OpenMobileMenu()
	if !s.MobileMenuOpen {
		t.Fatal("OpenMobileMenu() should be idempotent")
	}

	s.CloseMobileMenu()
	if s.MobileMenuOpen {
		t.Error("CloseMobileMenu() should close the drawer")
	}
}

func TestSidebarStateFlagsIndependent(t *testing.T) {
	s := SidebarState{Collapsed: true}
	s.OpenMobileMenu()
	s.CloseMobileMenu()

	if !s.Collapsed {
		t.Error("drawer actions must not change the collapsed flag")
	}
}
