package pagination

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which response shape an Envelope was decoded from.
type Kind int

const (
	// KindPlain is a bare JSON array.
	KindPlain Kind = iota
	// KindLaravel is {"data": [...], "total", "last_page", "current_page", "per_page"}.
	KindLaravel
	// KindNamed is {"<entity>": [...], "total_pages", "total"} with no current page.
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindLaravel:
		return "laravel"
	case KindNamed:
		return "named"
	default:
		return "plain"
	}
}

// ErrUnknownShape is returned for a body that matches none of the shapes.
var ErrUnknownShape = errors.New("unrecognized list response shape")

// Envelope is a list response normalized from one of the three shapes.
// Fields a shape does not carry are zero.
type Envelope struct {
	Kind  Kind
	Items []map[string]any

	Total       int
	LastPage    int
	CurrentPage int
	PerPage     int
	TotalPages  int
}

// Decode sniffs raw once and returns the normalized envelope. entityKey names
// the array field of the named shape (for example "instructors"). Numbers in
// items decode as json.Number.
func Decode(raw []byte, entityKey string) (Envelope, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Envelope{Kind: KindPlain}, nil
	}

	if raw[0] == '[' {
		items, err := decodeItems(raw)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{Kind: KindPlain, Items: items, Total: len(items)}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Envelope{}, fmt.Errorf("decode list response: %w", err)
	}

	if data, ok := obj["data"]; ok && isArray(data) {
		items, err := decodeItems(data)
		if err != nil {
			return Envelope{}, err
		}
		meta := obj
		if m, ok := obj["meta"]; ok {
			var nested map[string]json.RawMessage
			if json.Unmarshal(m, &nested) == nil {
				meta = nested
			}
		}
		env := Envelope{
			Kind:        KindLaravel,
			Items:       items,
			Total:       intField(meta, "total"),
			LastPage:    intField(meta, "last_page"),
			CurrentPage: intField(meta, "current_page"),
			PerPage:     intField(meta, "per_page"),
		}
		if _, ok := meta["total"]; !ok {
			env.Total = len(items)
		}
		return env, nil
	}

	if entityKey != "" {
		if data, ok := obj[entityKey]; ok && isArray(data) {
			items, err := decodeItems(data)
			if err != nil {
				return Envelope{}, err
			}
			env := Envelope{
				Kind:       KindNamed,
				Items:      items,
				Total:      intField(obj, "total"),
				TotalPages: intField(obj, "total_pages"),
			}
			if _, ok := obj["total"]; !ok {
				env.Total = len(items)
			}
			return env, nil
		}
	}

	return Envelope{}, ErrUnknownShape
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func decodeItems(raw []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode list items: %w", err)
	}
	return items, nil
}

// intField reads an integer that may be sent as a number or a numeric string.
func intField(obj map[string]json.RawMessage, key string) int {
	raw, ok := obj[key]
	if !ok {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return 0
}
