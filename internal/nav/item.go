package nav

import "fmt"

// Kind discriminates the three shapes a navigation entry can take.
type Kind string

const (
	KindTitle     Kind = "title"
	KindSeparator Kind = "separator"
	KindLink      Kind = "link"
)

// Item is a single static navigation entry.
//
// Only links carry a route. Titles carry a label, separators carry nothing.
type Item struct {
	Kind  Kind
	Label string
	Href  string
	Icon  string // icon identifier, see ui.Icon
}

// Title builds a section title entry.
func Title(label string) Item { return Item{Kind: KindTitle, Label: label} }

// Separator builds a separator entry.
func Separator() Item { return Item{Kind: KindSeparator} }

// Link builds a link entry.
func Link(href, label, icon string) Item {
	return Item{Kind: KindLink, Href: href, Label: label, Icon: icon}
}

// IsLink reports whether the entry is a link.
func (i Item) IsLink() bool { return i.Kind == KindLink }

func (i Item) String() string {
	switch i.Kind {
	case KindLink:
		return fmt.Sprintf("link(%s -> %s)", i.Label, i.Href)
	case KindTitle:
		return fmt.Sprintf("title(%s)", i.Label)
	default:
		return string(i.Kind)
	}
}

// IsActive reports whether a link pointing at href is the current route.
// The comparison is exact: "/dashboard/services/" and "/dashboard/services"
// are different routes, and parents are never active for their children.
func IsActive(currentPath, href string) bool {
	return currentPath == href
}
