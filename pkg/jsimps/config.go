// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

type NewlinesBetween string

const (
	NewlinesIgnore                NewlinesBetween = "ignore"
	NewlinesAlways                NewlinesBetween = "always"
	NewlinesAlwaysAndInsideGroups NewlinesBetween = "always-and-inside-groups"
	NewlinesNever                 NewlinesBetween = "never"
)

type UnassignedImports string

const (
	UnassignedAllow  UnassignedImports = "allow"
	UnassignedIgnore UnassignedImports = "ignore"
)

type AlphabetizeOrder string

const (
	OrderIgnore AlphabetizeOrder = "ignore"
	OrderAsc    AlphabetizeOrder = "asc"
	OrderDesc   AlphabetizeOrder = "desc"
)

type Config struct {
	Groups            []GroupSlot       `yaml:"groups"`
	NewlinesBetween   NewlinesBetween   `yaml:"newlinesBetween"`
	UnassignedImports UnassignedImports `yaml:"unassignedImports"`
	Alphabetize       Alphabetize       `yaml:"alphabetize"`
}

// GroupSlot is one entry in the group list; all labels in a slot share
// the same rank.
type GroupSlot struct {
	Labels []string

	// Nested is set when the configuration contained a list inside a
	// slot, which is invalid and reported when the rule is built.
	Nested bool
}

func Slot(labels ...string) GroupSlot {
	return GroupSlot{Labels: labels}
}

func (s *GroupSlot) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Labels = []string{node.Value}

	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				s.Nested = true
				continue
			}

			s.Labels = append(s.Labels, item.Value)
		}

	default:
		return fmt.Errorf("line %d: group must be a string or a list of strings", node.Line)
	}

	return nil
}

func (s GroupSlot) MarshalYAML() (interface{}, error) {
	if len(s.Labels) == 1 {
		return s.Labels[0], nil
	}

	return s.Labels, nil
}

type Alphabetize struct {
	Order      AlphabetizeOrder `yaml:"order"`
	IgnoreCase bool             `yaml:"ignoreCase"`

	// invalid holds the reason if the YAML had the wrong types
	invalid string
}

func (a *Alphabetize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		a.invalid = fmt.Sprintf("Incorrect alphabetize config: alphabetize should be an object, but `%s` found instead.", strconv.Quote(yamlTypeName(node)))
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "order":
			if jsType := yamlTypeName(value); jsType != "string" {
				a.invalid = fmt.Sprintf("Incorrect alphabetize config: `order` property should be a string, but `%s` found instead.", strconv.Quote(jsType))
				continue
			}

			a.Order = AlphabetizeOrder(value.Value)

		case "ignoreCase":
			if jsType := yamlTypeName(value); jsType != "boolean" {
				a.invalid = fmt.Sprintf("Incorrect alphabetize config: ignoreCase should be a boolean, but `%s` found instead.", strconv.Quote(jsType))
				continue
			}

			if err := value.Decode(&a.IgnoreCase); err != nil {
				return err
			}

		default:
			a.invalid = fmt.Sprintf("Incorrect alphabetize config: unknown property %s.", strconv.Quote(key))
		}
	}

	return nil
}

// yamlTypeName names the type of a YAML value the way users know
// it from JavaScript's typeof.
func yamlTypeName(node *yaml.Node) string {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return yamlTypeName(node.Alias)
	}

	if node.Kind != yaml.ScalarNode {
		return "object"
	}

	switch node.ShortTag() {
	case "!!str":
		return "string"
	case "!!bool":
		return "boolean"
	case "!!int", "!!float":
		return "number"
	default:
		return "object"
	}
}

func DefaultGroups() []GroupSlot {
	return []GroupSlot{
		Slot(string(GroupAbsolute)),
		Slot(string(GroupModule)),
		Slot(string(GroupParent)),
		Slot(string(GroupSibling)),
		Slot(string(GroupIndex)),
	}
}

func setDefaults(c *Config) {
	if len(c.Groups) == 0 {
		c.Groups = DefaultGroups()
	}

	if c.NewlinesBetween == "" {
		c.NewlinesBetween = NewlinesIgnore
	}

	if c.UnassignedImports == "" {
		c.UnassignedImports = UnassignedIgnore
	}

	if c.Alphabetize.Order == "" && c.Alphabetize.invalid == "" {
		c.Alphabetize.Order = OrderIgnore
	}
}

func validate(c *Config) error {
	if c.Alphabetize.invalid != "" {
		return configError("%s", c.Alphabetize.invalid)
	}

	switch c.Alphabetize.Order {
	case OrderIgnore, OrderAsc, OrderDesc:
	default:
		return configError("Incorrect alphabetize config: `order` property should be either `ignore`, `asc` or `desc`, but `%s` found instead.", strconv.Quote(string(c.Alphabetize.Order)))
	}

	switch c.NewlinesBetween {
	case NewlinesIgnore, NewlinesAlways, NewlinesAlwaysAndInsideGroups, NewlinesNever:
	default:
		return configError("Incorrect configuration of the rule: newlinesBetween should be one of `ignore`, `always`, `always-and-inside-groups` or `never`, but %s found instead.", strconv.Quote(string(c.NewlinesBetween)))
	}

	switch c.UnassignedImports {
	case UnassignedAllow, UnassignedIgnore:
	default:
		return configError("Incorrect configuration of the rule: unassignedImports should be either `allow` or `ignore`, but %s found instead.", strconv.Quote(string(c.UnassignedImports)))
	}

	return nil
}
