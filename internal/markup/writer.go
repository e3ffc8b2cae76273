// Package markup holds the small HTML writer used by the hand-written templ
// components in this module.
//
// Components are plain templ.ComponentFunc values; the writer keeps the first
// write error so component bodies can stay linear.
package markup

import (
	"context"
	"io"
	"sort"

	"github.com/a-h/templ"
)

// Writer writes escaped HTML to an underlying io.Writer.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// New returns a Writer bound to the render context and output.
func New(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes s without escaping. Only use it for markup literals.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s with HTML escaping.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *Writer) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// AttrIf writes the attribute only when value is non-empty.
func (h *Writer) AttrIf(name, value string) {
	if value != "" {
		h.Attr(name, value)
	}
}

// Flag writes a boolean attribute when on is true.
func (h *Writer) Flag(name string, on bool) {
	if on {
		h.Raw(" " + name)
	}
}

// Attrs writes a templ attribute set in a stable order.
func (h *Writer) Attrs(attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			h.Attr(k, v)
		case bool:
			h.Flag(k, v)
		}
	}
}

// Open writes an opening tag with optional attributes.
func (h *Writer) Open(tag string, attrs templ.Attributes) {
	h.Raw("<" + tag)
	h.Attrs(attrs)
	h.Raw(">")
}

// Close writes a closing tag.
func (h *Writer) Close(tag string) {
	h.Raw("</" + tag + ">")
}

// Element writes <tag attrs>text</tag>.
func (h *Writer) Element(tag string, attrs templ.Attributes, text string) {
	h.Open(tag, attrs)
	h.Text(text)
	h.Close(tag)
}

// Component renders a nested component into the same output.
func (h *Writer) Component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err returns the first error encountered.
func (h *Writer) Err() error {
	return h.err
}

// Func adapts a body function into a templ component.
func Func(body func(h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := New(ctx, w)
		body(h)
		return h.Err()
	})
}

// Text returns a component that renders escaped text.
func Text(s string) templ.Component {
	return Func(func(h *Writer) { h.Text(s) })
}
