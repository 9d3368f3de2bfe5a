// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"strings"

	"github.com/dlclark/regexp2"

	"go.xrstf.de/jsimps/pkg/source"
)

// Group is the label an import is classified into. Besides the
// built-in labels below, every regular expression literal like
// "/^@shared/" used in the configuration is a group of its own.
type Group string

const (
	GroupAbsolute Group = "absolute"
	GroupModule   Group = "module"
	GroupParent   Group = "parent"
	GroupSibling  Group = "sibling"
	GroupIndex    Group = "index"
	GroupType     Group = "type"
	GroupUnknown  Group = "unknown"
)

// knownGroups are the built-in labels that can be used in the configuration.
var knownGroups = []Group{GroupAbsolute, GroupModule, GroupParent, GroupSibling, GroupIndex, GroupType}

func isKnownGroup(g Group) bool {
	for _, known := range knownGroups {
		if g == known {
			return true
		}
	}

	return false
}

// IsRegex returns true for labels wrapped in slashes, like "/^@shared/".
func (g Group) IsRegex() bool {
	return len(g) > 1 && g[0] == '/' && g[len(g)-1] == '/'
}

func (g Group) pattern() string {
	return string(g[1 : len(g)-1])
}

type regexGroup struct {
	group Group
	expr  *regexp2.Regexp
}

type Classifier struct {
	regexGroups  []regexGroup
	typesAsGroup bool
}

func NewClassifier(regexGroups []regexGroup, typesAsGroup bool) *Classifier {
	return &Classifier{
		regexGroups:  regexGroups,
		typesAsGroup: typesAsGroup,
	}
}

// ClassifyImport determines the group of an import specifier. This is
// purely lexical, nothing is ever resolved on disk.
func (c *Classifier) ClassifyImport(name string, kind source.ImportKind) Group {
	for _, rg := range c.regexGroups {
		if matches, _ := rg.expr.MatchString(name); matches {
			return rg.group
		}
	}

	if c.typesAsGroup && kind == source.ImportType {
		return GroupType
	}

	switch {
	case isAbsolute(name):
		return GroupAbsolute
	case isModule(name):
		return GroupModule
	case isRelativeToParent(name):
		return GroupParent
	case isIndex(name):
		return GroupIndex
	case isRelativeToSibling(name):
		return GroupSibling
	}

	return GroupUnknown
}

func isAbsolute(name string) bool {
	return strings.HasPrefix(name, "/")
}

// a module is anything that doesn't start with a dot, a slash or a backslash
func isModule(name string) bool {
	return name != "" && !strings.ContainsAny(name[:1], `/\.`)
}

func isRelativeToParent(name string) bool {
	return strings.HasPrefix(name, "../") || strings.HasPrefix(name, `..\`)
}

func isIndex(name string) bool {
	switch name {
	case ".", "./", "./index":
		return true
	}

	ext, ok := strings.CutPrefix(name, "./index.")
	return ok && ext != "" && !strings.ContainsAny(ext, `/\`)
}

func isRelativeToSibling(name string) bool {
	return strings.HasPrefix(name, "./") || strings.HasPrefix(name, `.\`)
}
