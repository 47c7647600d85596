package mapfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is a parsed mapping document: a set of target shapes, each declaring
// its field mappings in order.
type File struct {
	Version string      `yaml:"version"`
	Shapes  []ShapeDecl `yaml:"shapes"`
}

// ShapeDecl declares the field mappings of one named target shape.
type ShapeDecl struct {
	Shape  string      `yaml:"shape"`
	Fields []FieldDecl `yaml:"fields"`
}

// FieldDecl declares one target field: a dotted source path or a named
// transform, optional group tags, and an ignore flag.
type FieldDecl struct {
	Field     string       `yaml:"field"`
	Path      string       `yaml:"path,omitempty"`
	Transform string       `yaml:"transform,omitempty"`
	Groups    StringOrList `yaml:"groups,omitempty"`
	Ignore    bool         `yaml:"ignore,omitempty"`
}

// StringOrList accepts either a single string or a sequence of strings.
type StringOrList []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrList.
func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		if str != "" {
			*s = StringOrList{str}
		} else {
			*s = StringOrList{}
		}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string when the list has one element.
func (s StringOrList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}
