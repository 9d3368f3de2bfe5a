// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.xrstf.de/jsimps/pkg/jsparse"
	"go.xrstf.de/jsimps/pkg/source"
)

// fixes can uncover new problems (or be deferred because they overlap),
// so fixing is repeated a few times
const maxFixPasses = 10

type Result struct {
	// Output is the (possibly fixed) file content.
	Output []byte

	// Changed is true if Output differs from the original content.
	Changed bool

	// Diagnostics are the problems that remain in Output.
	Diagnostics []Diagnostic
}

// Execute checks a single file and, if fix is true, applies all
// automatic fixes. The file itself is never written.
func Execute(ctx context.Context, config *Config, filePath string, fix bool) (*Result, error) {
	lang, ok := jsparse.LanguageForFile(filePath)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return Process(ctx, config, content, lang, fix)
}

// Process is like Execute, but works on in-memory content.
func Process(ctx context.Context, config *Config, content []byte, lang jsparse.Language, fix bool) (*Result, error) {
	rule, err := NewRule(config)
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			return &Result{
				Output:      content,
				Diagnostics: []Diagnostic{configurationDiagnostic(cerr)},
			}, nil
		}

		return nil, err
	}

	output := content

	var diagnostics []Diagnostic

	for pass := 0; ; pass++ {
		prog, err := jsparse.Parse(ctx, output, lang)
		if err != nil {
			return nil, err
		}

		diagnostics = rule.Check(prog)

		if !fix || pass == maxFixPasses {
			break
		}

		fixed, applied := source.ApplyEdits(string(output), fixEdits(diagnostics))
		if applied == 0 {
			break
		}

		output = []byte(fixed)
	}

	return &Result{
		Output:      output,
		Changed:     !bytes.Equal(content, output),
		Diagnostics: diagnostics,
	}, nil
}

// fixEdits returns the fixes to apply in one pass. Spacing is only fixed
// once no import needs to move anymore, otherwise inserted blank lines
// would travel along with the moved statements.
func fixEdits(diagnostics []Diagnostic) []source.Edit {
	ordering := []source.Edit{}
	spacing := []source.Edit{}

	for _, d := range diagnostics {
		switch {
		case d.Fix == nil:
			continue
		case d.ordering:
			ordering = append(ordering, *d.Fix)
		default:
			spacing = append(spacing, *d.Fix)
		}
	}

	if len(ordering) > 0 {
		return ordering
	}

	return spacing
}
