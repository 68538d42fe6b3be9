package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMenu is wrapped by every validation failure.
var ErrInvalidMenu = errors.New("invalid navigation menu")

// Menu is the ordered navigation configuration. Order is display order.
type Menu []Item

// Validate checks the structural rules of a menu: known kinds, required
// fields per kind, absolute hrefs and unique routes.
func (m Menu) Validate() error {
	seen := make(map[string]int, len(m))

	for i, item := range m {
		switch item.Kind {
		case KindTitle:
			if strings.TrimSpace(item.Label) == "" {
				return fmt.Errorf("%w: entry %d: title without label", ErrInvalidMenu, i)
			}
		case KindSeparator:
		case KindLink:
			if item.Href == "" || item.Label == "" || item.Icon == "" {
				return fmt.Errorf("%w: entry %d: link requires href, label and icon", ErrInvalidMenu, i)
			}
			if !strings.HasPrefix(item.Href, "/") {
				return fmt.Errorf("%w: entry %d: href %q must start with /", ErrInvalidMenu, i, item.Href)
			}
			if prev, dup := seen[item.Href]; dup {
				return fmt.Errorf("%w: entry %d: route %q already used by entry %d", ErrInvalidMenu, i, item.Href, prev)
			}
			seen[item.Href] = i
		default:
			return fmt.Errorf("%w: entry %d: unknown kind %q", ErrInvalidMenu, i, item.Kind)
		}
	}

	if len(seen) == 0 {
		return fmt.Errorf("%w: no links", ErrInvalidMenu)
	}
	return nil
}

// Links returns the link entries in display order.
func (m Menu) Links() []Item {
	links := make([]Item, 0, len(m))
	for _, item := range m {
		if item.IsLink() {
			links = append(links, item)
		}
	}
	return links
}

// Lookup finds the link whose href is exactly href.
func (m Menu) Lookup(href string) (Item, bool) {
	for _, item := range m {
		if item.IsLink() && item.Href == href {
			return item, true
		}
	}
	return Item{}, false
}

// Active returns the link active for currentPath, if any.
func (m Menu) Active(currentPath string) (Item, bool) {
	for _, item := range m {
		if item.IsLink() && IsActive(currentPath, item.Href) {
			return item, true
		}
	}
	return Item{}, false
}
