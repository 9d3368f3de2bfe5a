// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.xrstf.de/jsimps/pkg/jsparse"
)

func messages(diagnostics []Diagnostic) []string {
	result := []string{}
	for _, d := range diagnostics {
		result = append(result, d.String())
	}

	return result
}

func TestProcess(t *testing.T) {
	testcases := []struct {
		name   string
		config Config
		lang   jsparse.Language
		code   string

		// diagnostics of the unfixed code
		expected []string

		// fixed code, if it differs from the input
		fixed string

		// diagnostics that cannot be fixed automatically
		remaining []string
	}{
		{
			name: "already sorted with a regex group",
			config: Config{
				Groups: []GroupSlot{Slot("module"), Slot("parent"), Slot("/@shared/"), Slot("sibling"), Slot("index")},
			},
			code: `import fs from 'fs';
import async from 'async';
import foo from '../foo';
import shared from '@shared';
import sibling from './foo';
import index from './';
`,
		},
		{
			name: "alphabetize descending ignoring case",
			config: Config{
				Groups:      []GroupSlot{Slot("module"), Slot("index")},
				Alphabetize: Alphabetize{Order: OrderDesc, IgnoreCase: true},
			},
			code: `import foo from 'foo';
import bar from 'bar';
import Baz from 'Baz';
import index from './';
`,
			expected: []string{"3:1: `Baz` import should occur before import of `bar`"},
			fixed: `import foo from 'foo';
import Baz from 'Baz';
import bar from 'bar';
import index from './';
`,
		},
		{
			name: "sibling before index",
			code: `var index = require('./');
var sibling = require('./sibling');
`,
			expected: []string{"2:15: `./sibling` import should occur before import of `./`"},
			fixed: `var sibling = require('./sibling');
var index = require('./');
`,
		},
		{
			name:   "never allows no empty lines",
			config: Config{NewlinesBetween: NewlinesNever},
			code: `import fs from 'fs';

import path from 'path';
`,
			expected: []string{"1:1: There should be no empty line between import groups"},
			fixed: `import fs from 'fs';
import path from 'path';
`,
		},
		{
			name: "never cannot remove a multiline comment",
			config: Config{
				Groups:          []GroupSlot{Slot("module"), Slot("index")},
				NewlinesBetween: NewlinesNever,
			},
			code: `var fs = require('fs'); /* multiline
comment */

var index = require('./');
`,
			expected:  []string{"1:10: There should be no empty line between import groups"},
			remaining: []string{"1:10: There should be no empty line between import groups"},
		},
		{
			name:   "nested requires are ignored",
			config: Config{NewlinesBetween: NewlinesAlwaysAndInsideGroups},
			code: `var index = require('./');
function foo() {
  var fs = require('fs');
}
const obj = { fs: require('fs') };
if (obj) {
  var path = require('path');
}
`,
		},
		{
			name: "cannot move across other statements",
			code: `var parent = require('../parent');
foo();
var fs = require('fs');
`,
			expected:  []string{"3:10: `fs` import should occur before import of `../parent`"},
			remaining: []string{"3:10: `fs` import should occur before import of `../parent`"},
		},
		{
			name: "imports come before requires",
			code: `var parent = require('../parent');
import fs from 'fs';
`,
			expected: []string{"2:1: `fs` import should occur before import of `../parent`"},
			fixed: `import fs from 'fs';
var parent = require('../parent');
`,
		},
		{
			name: "unassigned imports are ignored by default",
			code: `import './foo';
import 'fs';
import path from 'path';
`,
		},
		{
			name:   "unassigned imports can be allowed",
			config: Config{UnassignedImports: UnassignedAllow},
			code: `import './foo';
import path from 'path';
`,
			expected: []string{"2:1: `path` import should occur before import of `./foo`"},
			fixed: `import path from 'path';
import './foo';
`,
		},
		{
			name: "unassigned imports are not crossed",
			code: `import sibling from './sibling';
import './side-effect';
import fs from 'fs';
`,
			expected:  []string{"3:1: `fs` import should occur before import of `./sibling`"},
			remaining: []string{"3:1: `fs` import should occur before import of `./sibling`"},
		},
		{
			name: "always between groups",
			config: Config{
				Groups:          []GroupSlot{Slot("module"), Slot("index")},
				NewlinesBetween: NewlinesAlways,
			},
			code: `var fs = require('fs');
var index = require('./');
`,
			expected: []string{"1:10: There should be at least one empty line between import groups"},
			fixed: `var fs = require('fs');

var index = require('./');
`,
		},
		{
			name:   "always forbids empty lines within a group",
			config: Config{NewlinesBetween: NewlinesAlways},
			code: `var fs = require('fs');

var path = require('path');
`,
			expected: []string{"1:10: There should be no empty line within import group"},
			fixed: `var fs = require('fs');
var path = require('path');
`,
		},
		{
			name:   "always-and-inside-groups",
			config: Config{NewlinesBetween: NewlinesAlwaysAndInsideGroups},
			code: `var fs = require('fs');
var path = require('path');
`,
			expected: []string{"1:10: There should be at least one empty line between imports"},
			fixed: `var fs = require('fs');

var path = require('path');
`,
		},
		{
			name: "reverse reporting when cheaper",
			code: `import index from './';
import fs from 'fs';
import parent from '../parent';
import sibling from './sibling';
`,
			expected: []string{"1:1: `./` import should occur after import of `./sibling`"},
			fixed: `import fs from 'fs';
import parent from '../parent';
import sibling from './sibling';
import index from './';
`,
		},
		{
			name: "comments move with their statement",
			code: `/* comment1 */  var parent = require('../parent'); /* comment2 */
/* comment3 */  var fs = require('fs'); /* comment4 */
`,
			expected: []string{"2:26: `fs` import should occur before import of `../parent`"},
			fixed: `/* comment3 */  var fs = require('fs'); /* comment4 */
/* comment1 */  var parent = require('../parent'); /* comment2 */
`,
		},
		{
			name: "windows line endings",
			code: "var parent = require('../parent');\r\nvar fs = require('fs');\r\n",
			expected: []string{
				"2:10: `fs` import should occur before import of `../parent`",
			},
			fixed: "var fs = require('fs');\r\nvar parent = require('../parent');\r\n",
		},
		{
			name: "statement at the end of the file",
			code: "var parent = require('../parent');\nvar fs = require('fs');",
			expected: []string{
				"2:10: `fs` import should occur before import of `../parent`",
			},
			fixed: "var fs = require('fs');\nvar parent = require('../parent');",
		},
		{
			name: "overlapping fixes need multiple passes",
			code: `import c from './c';
import b from '../b';
import a from 'a';
`,
			expected: []string{
				"2:1: `../b` import should occur before import of `./c`",
				"3:1: `a` import should occur before import of `./c`",
			},
			fixed: `import a from 'a';
import b from '../b';
import c from './c';
`,
		},
		{
			name:   "ordering and spacing fixes combined",
			config: Config{NewlinesBetween: NewlinesAlways},
			code: `import sibling from './sibling';
import fs from 'fs';
`,
			expected: []string{
				"1:1: There should be at least one empty line between import groups",
				"2:1: `fs` import should occur before import of `./sibling`",
			},
			fixed: `import fs from 'fs';

import sibling from './sibling';
`,
		},
		{
			name:   "spacing is fixed after all moves",
			config: Config{NewlinesBetween: NewlinesAlways},
			code: `import d from './';
import c from './c';
import b from '../b';
import a from 'a';

foo();
`,
			expected: []string{
				"1:1: There should be at least one empty line between import groups",
				"2:1: `./c` import should occur before import of `./`",
				"2:1: There should be at least one empty line between import groups",
				"3:1: `../b` import should occur before import of `./`",
				"3:1: There should be at least one empty line between import groups",
				"4:1: `a` import should occur before import of `./`",
			},
			fixed: `import a from 'a';

import b from '../b';

import c from './c';

import d from './';

foo();
`,
		},
		{
			name: "blank lines do not move onto following code",
			code: `import s from './s';

import a from 'a';
foo();
`,
			expected: []string{"3:1: `a` import should occur before import of `./s`"},
			fixed: `import a from 'a';

import s from './s';
foo();
`,
		},
		{
			name: "blank lines do not move onto preceding code",
			code: `import index from './';

import fs from 'fs';
import parent from '../parent';
import sibling from './sibling';
foo();
`,
			expected: []string{"1:1: `./` import should occur after import of `./sibling`"},
			fixed: `import fs from 'fs';
import parent from '../parent';
import sibling from './sibling';

import index from './';
foo();
`,
		},
		{
			name:   "type imports as a group",
			config: Config{Groups: []GroupSlot{Slot("module"), Slot("sibling"), Slot("type")}},
			lang:   jsparse.TypeScript,
			code: `import type { Foo } from './foo';
import React from 'react';
`,
			expected: []string{"2:1: `react` import should occur before import of `./foo`"},
			fixed: `import React from 'react';
import type { Foo } from './foo';
`,
		},
		{
			name:   "configuration error",
			config: Config{Groups: []GroupSlot{Slot("module"), Slot("foo")}},
			code: `import sibling from './sibling';
import fs from 'fs';
`,
			expected:  []string{`1:1: Incorrect configuration of the rule: Unknown type "foo". For a regular expression, wrap the string in '/', ex: '/shared/'`},
			remaining: []string{`1:1: Incorrect configuration of the rule: Unknown type "foo". For a regular expression, wrap the string in '/', ex: '/shared/'`},
		},
	}

	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			lang := tt.lang
			if lang == "" {
				lang = jsparse.JavaScript
			}

			expectedFixed := tt.fixed
			if expectedFixed == "" {
				expectedFixed = tt.code
			}

			linted, err := Process(ctx, &tt.config, []byte(tt.code), lang, false)
			require.NoError(t, err)
			assert.Equal(t, tt.code, string(linted.Output))
			assert.False(t, linted.Changed)
			assert.Equal(t, nonNil(tt.expected), messages(linted.Diagnostics))

			fixed, err := Process(ctx, &tt.config, []byte(tt.code), lang, true)
			require.NoError(t, err)
			assert.Equal(t, expectedFixed, string(fixed.Output))
			assert.Equal(t, tt.fixed != "", fixed.Changed)
			assert.Equal(t, nonNil(tt.remaining), messages(fixed.Diagnostics))

			// fixing is idempotent
			again, err := Process(ctx, &tt.config, fixed.Output, lang, true)
			require.NoError(t, err)
			assert.Equal(t, expectedFixed, string(again.Output))
			assert.False(t, again.Changed)
		})
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}

func TestProcessMalformedAlphabetize(t *testing.T) {
	config := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte("alphabetize: 5\n"), config))

	code := "import sibling from './sibling';\nimport fs from 'fs';\n"

	result, err := Process(context.Background(), config, []byte(code), jsparse.JavaScript, true)
	require.NoError(t, err)
	assert.Equal(t, code, string(result.Output))
	assert.False(t, result.Changed)
	assert.Equal(t, []string{"1:1: Incorrect alphabetize config: alphabetize should be an object, but `\"number\"` found instead."}, messages(result.Diagnostics))
}

func TestRuleIsReusable(t *testing.T) {
	rule, err := NewRule(&Config{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		prog, err := jsparse.Parse(context.Background(), []byte("import b from './b';\nimport a from 'a';\n"), jsparse.JavaScript)
		require.NoError(t, err)

		diagnostics := rule.Check(prog)
		require.Len(t, diagnostics, 1, "pass %d", i)
		require.NotNil(t, diagnostics[0].Fix)
	}
}

type testConfig struct {
	Config `yaml:",inline"`

	ExpectedDiagnostics []string `yaml:"expectedDiagnostics"`
}

func TestExecute(t *testing.T) {
	testcases, err := filepath.Glob("testdata/*")
	require.Nil(t, err)

	for _, testcase := range testcases {
		stat, err := os.Stat(testcase)
		require.Nil(t, err)

		if !stat.IsDir() {
			continue
		}

		name := filepath.Base(testcase)

		t.Run(name, func(t *testing.T) {
			config := loadTestConfig(t, testcase)

			inputs, err := filepath.Glob(filepath.Join(testcase, "input.*"))
			require.Nil(t, err)
			require.Len(t, inputs, 1)

			result, err := Execute(context.Background(), &config.Config, inputs[0], true)
			require.Nil(t, err)

			expectedFile := strings.Replace(inputs[0], "input.", "expected.", 1)
			expected, err := os.ReadFile(expectedFile)
			require.Nil(t, err)

			assert.Equal(t, string(expected), string(result.Output))
			assert.Equal(t, nonNil(config.ExpectedDiagnostics), messages(result.Diagnostics))
		})
	}
}

func TestExecuteUnsupportedFile(t *testing.T) {
	_, err := Execute(context.Background(), &Config{}, "main.go", false)
	require.Error(t, err)
}

func loadTestConfig(t *testing.T, testcase string) *testConfig {
	f, err := os.Open(filepath.Join(testcase, "config.yaml"))
	require.Nil(t, err)
	defer f.Close()

	c := &testConfig{}
	err = yaml.NewDecoder(f).Decode(c)
	require.Nil(t, err)

	return c
}
