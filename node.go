package markup

import (
	"fmt"
	"sort"
)

// DefaultTag is the element name used by nodes that do not name one.
const DefaultTag = "div"

// Node describes one element.
type Node struct {
	// Tag is the element name. Empty means DefaultTag.
	Tag string
	// Fragment drops the wrapping element: only Content is rendered and
	// Attrs are ignored.
	Fragment bool
	Attrs    Attrs
	Content  any
}

// Fragment returns a node rendering only its content.
func Fragment(content ...any) Node {
	return Node{Fragment: true, Content: content}
}

func (n Node) name() string {
	if n.Tag == "" {
		return DefaultTag
	}
	return n.Tag
}

// Attr is a single attribute. Value is a string, a number or a bool.
type Attr struct {
	Name  string
	Value any
}

// Attrs keeps attributes in the order they are rendered.
type Attrs []Attr

// Get returns the value of the first attribute called name.
func (a Attrs) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of the attribute called name, or appends it.
func (a Attrs) Set(name string, value any) Attrs {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Name: name, Value: value})
}

// nodeFromMap reads a node in the map form produced by encoding/json.
func nodeFromMap(m map[string]any) (Node, error) {
	var node Node

	switch tag := m["tag"].(type) {
	case nil:
	case string:
		node.Tag = tag
	case bool:
		if tag {
			return node, fmt.Errorf("tag must be a string or false, got true: %w", ErrInvalidValue)
		}
		node.Fragment = true
	default:
		return node, fmt.Errorf("tag must be a string or false, got %T: %w", tag, ErrInvalidValue)
	}

	// fragments ignore attrs, so they are not checked either
	if !node.Fragment {
		attrs, err := attrsFrom(m["attrs"])
		if err != nil {
			return node, err
		}
		node.Attrs = attrs
	}
	node.Content = m["content"]
	return node, nil
}

func attrsFrom(value any) (Attrs, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Attrs:
		return v, nil
	case []Attr:
		return v, nil
	case map[string]any:
		return sortedAttrs(v), nil
	case map[string]string:
		return sortedAttrs(v), nil
	default:
		return nil, fmt.Errorf("attrs must be a mapping, got %T: %w", value, ErrInvalidValue)
	}
}

// sortedAttrs orders map attributes by name, since Go maps carry no
// insertion order.
func sortedAttrs[V any](m map[string]V) Attrs {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	attrs := make(Attrs, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, Attr{Name: name, Value: m[name]})
	}
	return attrs
}
