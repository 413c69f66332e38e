package markup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	numberType   = reflect.TypeFor[json.Number]()
)

type Renderer struct {
	out        io.Writer
	opts       Options
	converters convertersMap
}

func NewRenderer(out io.Writer, opts *Options) *Renderer {
	return &Renderer{out: out, opts: opts.resolve(), converters: make(convertersMap)}
}

// Render writes the markup for value. Nothing is written when value cannot
// be rendered.
func (r *Renderer) Render(value any) error {
	var buf bytes.Buffer
	if err := r.renderValue(&buf, value); err != nil {
		return err
	}
	_, err := buf.WriteTo(r.out)
	return err
}

func (r *Renderer) renderValue(buf *bytes.Buffer, value any) error {
	switch x := value.(type) {
	case nil:
		return nil
	case string:
		buf.WriteString(x)
		return nil
	case []byte:
		buf.Write(x)
		return nil
	case Node:
		return r.renderNode(buf, x)
	case *Node:
		if x == nil {
			return nil
		}
		return r.renderNode(buf, *x)
	case []any:
		for _, item := range x {
			if err := r.renderValue(buf, item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		node, err := nodeFromMap(x)
		if err != nil {
			return err
		}
		return r.renderNode(buf, node)
	case Marshaler:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil
		}
		tree, err := x.MarshalMarkup()
		if err != nil {
			return fmt.Errorf("marshaling %T: %w", value, err)
		}
		return r.renderValue(buf, tree)
	}

	v := reflect.ValueOf(value)
	for {
		t := v.Type()

		// Check if we have a custom converter for this type
		if convert, ok := r.converters[t]; ok {
			return r.renderValue(buf, convert(v))
		}

		if t.Implements(stringerType) {
			if t.Kind() == reflect.Ptr && v.IsNil() {
				return nil
			}
			buf.WriteString(v.Interface().(fmt.Stringer).String())
			return nil
		}

		if s, ok := numberString(v); ok {
			buf.WriteString(s)
			return nil
		}

		switch t.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
			if v.Kind() != reflect.Ptr && v.Kind() != reflect.Interface && v.CanInterface() {
				// re-enter the fast path for *string, *[]any and the like
				return r.renderValue(buf, v.Interface())
			}
			continue

		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				if err := r.renderValue(buf, v.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil

		case reflect.String:
			buf.WriteString(v.String())
			return nil
		}

		return fmt.Errorf("cannot render %s: %w", t, ErrInvalidValue)
	}
}

func (r *Renderer) renderNode(buf *bytes.Buffer, node Node) error {
	if node.Fragment {
		return r.renderValue(buf, node.Content)
	}

	tag := node.name()
	buf.WriteByte('<')
	buf.WriteString(tag)
	if err := r.writeAttrs(buf, node.Attrs); err != nil {
		return fmt.Errorf("<%s>: %w", tag, err)
	}

	if !r.opts.isSingleTag(tag) {
		buf.WriteByte('>')
		if err := r.renderValue(buf, node.Content); err != nil {
			return err
		}
		writeClosingTag(buf, tag)
		return nil
	}

	switch r.opts.ClosingSingleTag {
	case ClosingTag:
		buf.WriteByte('>')
		writeClosingTag(buf, tag)
	case ClosingSlash:
		buf.WriteString(" />")
	default:
		buf.WriteByte('>')
	}
	// single tags never wrap their content
	return r.renderValue(buf, node.Content)
}

func writeClosingTag(buf *bytes.Buffer, tag string) {
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteByte('>')
}

// numberString formats numeric kinds and json.Number.
func numberString(v reflect.Value) (string, bool) {
	if v.Type() == numberType {
		return v.String(), true
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return formatFloat(v.Float(), 32), true
	case reflect.Float64:
		return formatFloat(v.Float(), 64), true
	}
	return "", false
}

// formatFloat follows JavaScript's Number#toString: plain decimals between
// 1e-6 and 1e21, exponent notation outside.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}
