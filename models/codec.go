package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes warbands as an object in insertion order.
func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to encode warband %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads warbands keeping the order they appear in the document.
func (r *Roster) UnmarshalJSON(data []byte) error {
	*r = Roster{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("warbands: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("warbands: expected name, got %v", tok)
		}
		wb := NewWarband()
		if err := dec.Decode(wb); err != nil {
			return fmt.Errorf("warband %q: %w", name, err)
		}
		if err := r.put(name, wb); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes rounds keyed by their number as a string, ascending numerically.
func (r Rounds) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		matches := r[n]
		if matches == nil {
			matches = []*Match{}
		}
		val, err := json.Marshal(matches)
		if err != nil {
			return nil, fmt.Errorf("failed to encode round %d: %w", n, err)
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(n)))
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses string round keys into integers.
func (r *Rounds) UnmarshalJSON(data []byte) error {
	var raw map[string][]*Match
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	type entry struct {
		key string
		n   int
	}
	entries := make([]entry, 0, len(raw))
	for key := range raw {
		n, err := parseRoundKey(key)
		if err != nil {
			return err
		}
		entries = append(entries, entry{key, n})
	}
	// "1" and "01" name the same round; merge them in a stable order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n < entries[j].n
		}
		return entries[i].key < entries[j].key
	})

	out := make(Rounds, len(entries))
	for _, e := range entries {
		if err := out.merge(e.n, raw[e.key]); err != nil {
			return err
		}
	}
	*r = out
	return nil
}

// MarshalYAML emits warbands as a mapping in insertion order.
func (r Roster) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.names {
		val := &yaml.Node{}
		if err := val.Encode(r.byName[name]); err != nil {
			return nil, fmt.Errorf("failed to encode warband %q: %w", name, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, val)
	}
	return node, nil
}

// UnmarshalYAML reads warbands keeping document order.
func (r *Roster) UnmarshalYAML(value *yaml.Node) error {
	*r = Roster{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("warbands: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		wb := NewWarband()
		if err := value.Content[i+1].Decode(wb); err != nil {
			return fmt.Errorf("warband %q: %w", name, err)
		}
		if err := r.put(name, wb); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML emits rounds ascending numerically with string keys.
func (r Rounds) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, n := range r.keys() {
		matches := r[n]
		if matches == nil {
			matches = []*Match{}
		}
		val := &yaml.Node{}
		if err := val.Encode(matches); err != nil {
			return nil, fmt.Errorf("failed to encode round %d: %w", n, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: strconv.Itoa(n)}, val)
	}
	return node, nil
}

// UnmarshalYAML parses round keys into integers.
func (r *Rounds) UnmarshalYAML(value *yaml.Node) error {
	out := Rounds{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*r = out
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("rounds: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		n, err := parseRoundKey(value.Content[i].Value)
		if err != nil {
			return err
		}
		var matches []*Match
		if err := value.Content[i+1].Decode(&matches); err != nil {
			return fmt.Errorf("round %d: %w", n, err)
		}
		if err := out.merge(n, matches); err != nil {
			return err
		}
	}
	*r = out
	return nil
}

// put stores a decoded warband; a repeated name overwrites the record but keeps its first position.
func (r *Roster) put(name string, wb *Warband) error {
	if wb.Matches == nil {
		wb.Matches = []*Match{}
	}
	for i, m := range wb.Matches {
		if m == nil {
			return fmt.Errorf("warband %q: match %d is null", name, i)
		}
	}
	if _, exists := r.byName[name]; exists {
		r.byName[name] = wb
		return nil
	}
	r.Add(name, wb)
	return nil
}

// merge appends decoded matches to round n. Null entries make the document invalid.
func (r Rounds) merge(n int, matches []*Match) error {
	for i, m := range matches {
		if m == nil {
			return fmt.Errorf("round %d: match %d is null", n, i)
		}
	}
	r[n] = append(r[n], matches...)
	if r[n] == nil {
		r[n] = []*Match{}
	}
	return nil
}

// keys lists every round, including empty ones, ascending.
func (r Rounds) keys() []int {
	out := make([]int, 0, len(r))
	for n := range r {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func parseRoundKey(key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("invalid round key %q: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid round key %q: rounds start at 1", key)
	}
	return n, nil
}
