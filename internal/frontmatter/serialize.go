package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Quoted is a string always emitted in double quotes.
type Quoted string

// Timestamp is a date-time string emitted as a plain YAML timestamp.
type Timestamp string

// FlowList is a string sequence emitted inline: [a, b].
type FlowList []string

// Field is one entry of an ordered frontmatter block.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered frontmatter block. Nested blocks use Fields as a value.
type Fields []Field

// SerializeOrdered renders fields in the given order (without delimiters).
func SerializeOrdered(fields Fields, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	node, err := nodeFromFields(fields)
	if err != nil {
		return nil, err
	}
	return encode(node, style)
}

// SerializeYAML serializes a frontmatter map with keys sorted recursively, so
// output is stable. An empty map yields an empty slice.
func SerializeYAML(fields map[string]any, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	node, err := nodeFromStringMap(fields)
	if err != nil {
		return nil, err
	}
	return encode(node, style)
}

func encode(node *yaml.Node, style Style) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if nl := style.Newline; nl != "" && nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}

func nodeFromFields(fields Fields) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		val, err := nodeFromAny(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		n.Content = append(n.Content, scalar("!!str", f.Key), val)
	}
	return n, nil
}

func nodeFromStringMap(m map[string]any) (*yaml.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(Fields, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return nodeFromFields(fields)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func nodeFromAny(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case Quoted:
		n := scalar("!!str", string(vv))
		n.Style = yaml.DoubleQuotedStyle
		return n, nil
	case Timestamp:
		return scalar("!!timestamp", string(vv)), nil
	case FlowList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range vv {
			seq.Content = append(seq.Content, scalar("!!str", item))
		}
		return seq, nil
	case Fields:
		return nodeFromFields(vv)
	case string:
		return scalar("!!str", vv), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(vv)), nil
	case int:
		return scalar("!!int", strconv.Itoa(vv)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(vv, 10)), nil
	case float64:
		return scalar("!!float", strconv.FormatFloat(vv, 'g', -1, 64)), nil
	case map[string]any:
		return nodeFromStringMap(vv)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			node, err := nodeFromAny(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, node)
		}
		return seq, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			seq.Content = append(seq.Content, scalar("!!str", item))
		}
		return seq, nil
	default:
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return &node, nil
	}
}
