package markup

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode reads a JSON or YAML document into a tree. Mappings become Nodes
// with their attributes in document order. An empty document decodes to nil.
func Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return decodeValue(doc.Content[0])
}

func decodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeValue(n.Alias)

	case yaml.ScalarNode:
		value, err := decodeScalar(n)
		if err != nil {
			return nil, err
		}
		if _, ok := value.(bool); ok {
			return nil, fmt.Errorf("line %d: boolean %s is not content: %w", n.Line, n.Value, ErrInvalidValue)
		}
		return value, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := decodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case yaml.MappingNode:
		return decodeNode(n)
	}
	return nil, fmt.Errorf("line %d: unexpected document node: %w", n.Line, ErrInvalidValue)
}

func decodeNode(n *yaml.Node) (Node, error) {
	var (
		node  Node
		attrs *yaml.Node
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}

		switch key.Value {
		case "tag":
			if value.Kind != yaml.ScalarNode {
				return node, fmt.Errorf("line %d: tag must be a string or false: %w", value.Line, ErrInvalidValue)
			}
			switch value.ShortTag() {
			case "!!null":
				node.Tag = ""
			case "!!bool":
				var b bool
				if err := value.Decode(&b); err != nil {
					return node, fmt.Errorf("line %d: %w", value.Line, err)
				}
				if b {
					return node, fmt.Errorf("line %d: tag must be a string or false, got true: %w", value.Line, ErrInvalidValue)
				}
				node.Fragment = true
			case "!!str":
				node.Tag = value.Value
			default:
				return node, fmt.Errorf("line %d: tag must be a string or false, got %s: %w", value.Line, value.Value, ErrInvalidValue)
			}

		case "attrs":
			attrs = value

		case "content":
			content, err := decodeValue(value)
			if err != nil {
				return node, err
			}
			node.Content = content
		}
	}

	// attrs may precede tag; fragments ignore them
	if attrs != nil && !node.Fragment {
		decoded, err := decodeAttrs(attrs)
		if err != nil {
			return node, err
		}
		node.Attrs = decoded
	}
	return node, nil
}

func decodeAttrs(n *yaml.Node) (Attrs, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
	case yaml.MappingNode:
		attrs := make(Attrs, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if value.Kind == yaml.AliasNode {
				value = value.Alias
			}
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: attribute %q must be a string, number or boolean: %w", value.Line, key.Value, ErrInvalidValue)
			}
			v, err := decodeScalar(value)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, Attr{Name: key.Value, Value: v})
		}
		return attrs, nil
	}
	return nil, fmt.Errorf("line %d: attrs must be a mapping: %w", n.Line, ErrInvalidValue)
}

// decodeScalar resolves a scalar to string, int64, uint64, float64, bool or
// nil. Other tags, timestamps included, keep their literal text.
func decodeScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return f, nil
	}
	return n.Value, nil
}
