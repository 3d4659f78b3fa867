package sutra

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// layout remembers the key order of a decoded object and the members the
// typed struct does not model, so a rewrite reproduces them.
type layout struct {
	order []string
	extra map[string]json.RawMessage
}

// member is one typed field of an object being encoded. omit drops the
// member unless the decoded object carried the key.
type member struct {
	key   string
	value any
	omit  bool
}

func decodeLayout(data []byte, known ...string) (layout, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return layout{}, err
	}
	if tok == nil {
		return layout{}, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return layout{}, fmt.Errorf("expected an object, got %v", tok)
	}

	isKnown := make(map[string]bool, len(known))
	for _, k := range known {
		isKnown[k] = true
	}

	var l layout
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return layout{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return layout{}, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return layout{}, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		l.order = append(l.order, key)
		if isKnown[key] {
			continue
		}
		if l.extra == nil {
			l.extra = make(map[string]json.RawMessage)
		}
		l.extra[key] = value
	}
	return l, nil
}

// encode writes members in the decoded key order, interleaving the unknown
// members. Members the decoded object lacked follow in their given order.
func (l layout) encode(members []member) ([]byte, error) {
	byKey := make(map[string]member, len(members))
	for _, m := range members {
		byKey[m.key] = m
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		k, err := marshalUnescaped(key)
		if err != nil {
			return err
		}
		v, err := marshalUnescaped(value)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	written := make(map[string]bool, len(l.order))
	for _, key := range l.order {
		if m, ok := byKey[key]; ok {
			if err := write(key, m.value); err != nil {
				return nil, err
			}
			written[key] = true
			continue
		}
		if raw, ok := l.extra[key]; ok {
			if err := write(key, raw); err != nil {
				return nil, err
			}
		}
	}
	for _, m := range members {
		if written[m.key] || m.omit {
			continue
		}
		if err := write(m.key, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
