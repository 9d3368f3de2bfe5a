// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"
)

// ConfigurationError is returned for configurations that cannot be
// turned into a rule. Its message is shown to the user verbatim.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func configError(format string, args ...interface{}) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// RankTable maps every group label to the index of its slot in the
// configured group list.
type RankTable struct {
	ranks       map[Group]int
	regexGroups []regexGroup
}

// BuildRankTable validates the group slots and assigns ranks. Built-in
// labels missing from the slots all share the rank len(slots).
// Example: [index, [sibling, parent], module] => {index: 0, sibling: 1, parent: 1, module: 2, ...}
func BuildRankTable(slots []GroupSlot) (*RankTable, error) {
	table := &RankTable{
		ranks: map[Group]int{},
	}

	for idx, slot := range slots {
		if slot.Nested {
			return nil, configError("Incorrect configuration of the rule: group %d must be a string or a list of strings, nested lists are not allowed", idx+1)
		}

		for _, label := range slot.Labels {
			group := Group(label)

			if !group.IsRegex() && !isKnownGroup(group) {
				return nil, configError("Incorrect configuration of the rule: Unknown type %s. For a regular expression, wrap the string in '/', ex: '/shared/'", strconv.Quote(label))
			}

			if _, exists := table.ranks[group]; exists {
				return nil, configError("Incorrect configuration of the rule: `%s` is duplicated", label)
			}

			if group.IsRegex() {
				expr, err := regexp2.Compile(group.pattern(), regexp2.ECMAScript)
				if err != nil {
					return nil, configError("Incorrect configuration of the rule: Invalid regular expression %s: %v", label, err)
				}

				table.regexGroups = append(table.regexGroups, regexGroup{group: group, expr: expr})
			}

			table.ranks[group] = idx
		}
	}

	for _, group := range knownGroups {
		if _, exists := table.ranks[group]; !exists {
			table.ranks[group] = len(slots)
		}
	}

	return table, nil
}

// Rank returns the rank of a group; unknown groups have none.
func (t *RankTable) Rank(group Group) (int, bool) {
	rank, ok := t.ranks[group]
	return rank, ok
}

// listsGroup returns true if the group was named in the configuration
// and is not just ranked last by omission.
func listsGroup(slots []GroupSlot, group Group) bool {
	for _, slot := range slots {
		for _, label := range slot.Labels {
			if Group(label) == group {
				return true
			}
		}
	}

	return false
}
