// Package markup renders JSON-like trees into HTML.
//
// A tree is a string, a number, a slice of trees or a Node:
//
//	html, err := markup.Render([]any{
//		markup.Node{Tag: "h1", Content: "Hello"},
//		markup.Node{Tag: "img", Attrs: markup.Attrs{{"src", "/a.png"}, {"alt", ""}}},
//	}, nil)
//	// <h1>Hello</h1><img src="/a.png" alt="">
//
// Text is emitted verbatim. Only attribute values are escaped, and only for
// the quote character that delimits them.
package markup

import (
	"bytes"
	"errors"
	"io"
	"reflect"
)

var (
	// ErrInvalidValue is returned when a value cannot be rendered.
	ErrInvalidValue = errors.New("invalid markup value")
	// ErrInvalidOption is returned when an option cannot be parsed.
	ErrInvalidOption = errors.New("invalid markup option")
)

func Render(value any, opts *Options) (string, error) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf, opts).Render(value); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Write(w io.Writer, value any, opts *Options) error {
	return NewRenderer(w, opts).Render(value)
}

// Marshaler is implemented by types that know how to describe themselves as
// a tree.
type Marshaler interface {
	MarshalMarkup() (any, error)
}

type ConvertFn[T any] func(T) any

type convertersMap map[reflect.Type]func(reflect.Value) any
