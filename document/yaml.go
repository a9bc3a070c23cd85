package document

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML mapping into a Document, preserving key order.
// The top-level node must be a mapping. Schema documents checked into
// configuration are typically written in YAML; this is the ingestion path
// for them.
func ParseYAML(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}
	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected YAML mapping at top level, got %s", yamlKindName(node.Kind))
	}
	return yamlMapping(node)
}

func yamlMapping(node *yaml.Node) (Document, error) {
	var doc Document
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("mapping key at line %d must be a scalar", keyNode.Line)
		}
		v, err := yamlValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", keyNode.Value, err)
		}
		doc = append(doc, Element{Name: keyNode.Value, Value: v})
	}
	return doc, nil
}

func yamlValue(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.MappingNode:
		doc, err := yamlMapping(node)
		if err != nil {
			return Value{}, err
		}
		return Object(doc), nil
	case yaml.SequenceNode:
		elems := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := yamlValue(child)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	}
	return Value{}, fmt.Errorf("unsupported YAML node at line %d", node.Line)
}

func yamlScalar(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean %q at line %d", node.Value, node.Line)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q at line %d", node.Value, node.Line)
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return Int(int32(i)), nil
		}
		return Long(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q at line %d", node.Value, node.Line)
		}
		return Double(f), nil
	default:
		return String(node.Value), nil
	}
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
