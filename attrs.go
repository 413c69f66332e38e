package markup

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// whitespace forces a value to be quoted even when quoting is optional.
const whitespace = " \t\n\f\r"

// writeAttrs appends " name=value" for every rendered attribute.
func (r *Renderer) writeAttrs(buf *bytes.Buffer, attrs Attrs) error {
	for _, attr := range attrs {
		if err := r.writeAttr(buf, attr); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeAttr(buf *bytes.Buffer, attr Attr) error {
	value, present, err := attrString(attr.Value)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", attr.Name, err)
	}
	if !present {
		return nil
	}

	buf.WriteByte(' ')
	buf.WriteString(attr.Name)
	if value == nil || (*value == "" && r.opts.QuoteWhenRequired) {
		return nil
	}

	buf.WriteByte('=')
	if !r.opts.QuoteWhenRequired || *value == "" || strings.ContainsAny(*value, whitespace) {
		quoteAttr(buf, *value, r.opts.QuoteStyle, !r.opts.NoReplaceQuote)
	} else {
		buf.WriteString(*value)
	}
	return nil
}

// attrString classifies an attribute value. present is false when the
// attribute is omitted; a nil value with present set is a bare flag.
func attrString(v any) (value *string, present bool, err error) {
	switch x := v.(type) {
	case nil:
		return nil, false, nil
	case bool:
		return nil, x, nil
	case string:
		return &x, true, nil
	}

	rv := reflect.ValueOf(v)
	for {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, false, nil
		}
		// same precedence as content: Stringer before the numeric kinds
		if rv.Type().Implements(stringerType) {
			s := rv.Interface().(fmt.Stringer).String()
			return &s, true, nil
		}
		if rv.Kind() != reflect.Ptr {
			break
		}
		rv = rv.Elem()
	}
	if s, ok := numberString(rv); ok {
		return &s, true, nil
	}
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return &s, true, nil
	case reflect.Bool:
		return nil, rv.Bool(), nil
	}
	return nil, false, fmt.Errorf("unsupported value type %T: %w", v, ErrInvalidValue)
}

// quoteChar picks the delimiter for value.
func quoteChar(value string, style QuoteStyle) byte {
	switch style {
	case QuoteSingle:
		return '\''
	case QuoteSmart:
		if strings.IndexByte(value, '"') >= 0 {
			return '\''
		}
	}
	return '"'
}

func quoteAttr(buf *bytes.Buffer, value string, style QuoteStyle, replace bool) {
	quote := quoteChar(value, style)
	buf.WriteByte(quote)
	if replace {
		entity := "&quot;"
		if quote == '\'' {
			entity = "&#39;"
		}
		for {
			i := strings.IndexByte(value, quote)
			if i < 0 {
				break
			}
			buf.WriteString(value[:i])
			buf.WriteString(entity)
			value = value[i+1:]
		}
	}
	buf.WriteString(value)
	buf.WriteByte(quote)
}
