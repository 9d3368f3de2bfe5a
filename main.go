// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"go.xrstf.de/jsimps/pkg/jsimps"
	"go.xrstf.de/jsimps/pkg/jsparse"
)

// Project build specific vars
var (
	Tag       string
	Commit    string
	SourceURL string
	GoVersion string
)

func printVersion() {
	fmt.Printf(
		"version: %s\nbuild with: %s\ntag: %s\ncommit: %s\nsource: %s\n",
		strings.TrimPrefix(Tag, "v"),
		GoVersion,
		Tag,
		Commit,
		SourceURL,
	)
}

type options struct {
	configFile  string
	fix         bool
	stdout      bool
	verbose     bool
	showVersion bool
}

func main() {
	opts := options{}

	pflag.StringVarP(&opts.configFile, "config", "c", opts.configFile, "Path to the config file (default: autodetect .jsimps.yaml).")
	pflag.BoolVarP(&opts.fix, "fix", "f", opts.fix, "Rewrite files to fix all fixable problems.")
	pflag.BoolVar(&opts.stdout, "stdout", opts.stdout, "Print the (fixed) output to stdout instead of updating the source file(s).")
	pflag.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "Enable debug logging.")
	pflag.BoolVarP(&opts.showVersion, "version", "V", opts.showVersion, "Show version and exit.")
	pflag.Parse()

	if opts.showVersion {
		printVersion()
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.InfoLevel,
	})

	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if pflag.NArg() == 0 {
		logger.Fatal("Usage: jsimps [--fix] [--stdout] [--config=(autodetect)] FILE_OR_DIRECTORY[, ...]")
	}

	inputs, err := cleanupArgs(pflag.Args())
	if err != nil {
		logger.Fatalf("Invalid arguments: %v.", err)
	}

	// the project root is only needed to find the .jsimps.yaml and to make
	// exclude patterns relative; without a package.json we fall back to
	// the directory of the first input
	projectRoot, err := projectRootPath(inputs[0])
	if err != nil {
		projectRoot = inputs[0]
		if info, err := os.Stat(projectRoot); err == nil && !info.IsDir() {
			projectRoot = filepath.Dir(projectRoot)
		}

		logger.Debug("No package.json found, using fallback project root.", "root", projectRoot)
	}

	config, err := loadConfiguration(opts.configFile, projectRoot)
	if err != nil {
		logger.Fatalf("Failed to load -config file %q: %v", opts.configFile, err)
	}

	ctx := context.Background()
	problems := 0

	for _, input := range inputs {
		filenames, err := listFiles(input, projectRoot, config.Exclude)
		if err != nil {
			logger.Fatalf("Failed to list files in %q: %v", input, err)
		}

		for _, filename := range filenames {
			relPath, err := filepath.Rel(projectRoot, filename)
			if err != nil {
				relPath = filename
			}

			logger.Debug("Processing file.", "file", relPath)

			result, err := jsimps.Execute(ctx, &config.Config, filename, opts.fix)
			if err != nil {
				logger.Fatalf("Failed to process %q: %v", filename, err)
			}

			printDiagnostics(diagnosticsOutput(opts), relPath, result.Diagnostics)

			problems += len(result.Diagnostics)

			if opts.stdout {
				fmt.Print(string(result.Output))
			} else if result.Changed {
				logger.Infof("Fixing %s", relPath)

				if err := os.WriteFile(filename, result.Output, 0644); err != nil {
					logger.Fatalf("Failed to write fixed result to file %q: %v", filename, err)
				}
			}
		}
	}

	if problems > 0 {
		logger.Debug("Problems remain.", "count", problems)
		os.Exit(1)
	}
}

// diagnosticsOutput keeps stdout free for the file content when --stdout
// is used.
func diagnosticsOutput(opts options) io.Writer {
	if opts.stdout {
		return os.Stderr
	}

	return os.Stdout
}

func printDiagnostics(w io.Writer, relPath string, diagnostics []jsimps.Diagnostic) {
	for _, d := range diagnostics {
		suffix := ""
		if d.Fix != nil {
			suffix = " (fixable)"
		}

		fmt.Fprintf(w, "%s:%s%s\n", relPath, d, suffix)
	}
}

// cleanupArgs removes duplicates and turns every argument into an absolute
// filesystem path. The result is sorted alphabetically.
func cleanupArgs(args []string) ([]string, error) {
	unique := map[string]struct{}{}

	for _, arg := range args {
		if arg == "" {
			var err error

			arg, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("invalid path %q: %w", arg, err)
			}
		}

		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", arg, err)
		}

		unique[abs] = struct{}{}
	}

	result := []string{}
	for path := range unique {
		result = append(result, path)
	}

	sort.Strings(result)

	return result, nil
}

// listFiles returns all supported source files below start. Directories
// matching one of the skip patterns (relative to the project root) and
// node_modules are not descended into. A file given explicitly is always
// returned if its extension is supported.
func listFiles(start string, projectRoot string, skips []string) ([]string, error) {
	result := []string{}

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}

		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != start && d.Name() == "node_modules" {
				return filepath.SkipDir
			}

			for _, skip := range skips {
				if match, _ := doublestar.Match(skip, relPath); match {
					return filepath.SkipDir
				}
			}

			return nil
		}

		if _, ok := jsparse.LanguageForFile(path); !ok {
			return nil
		}

		if path != start {
			for _, skip := range skips {
				if match, _ := doublestar.Match(skip, relPath); match {
					return nil
				}
			}
		}

		result = append(result, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func projectRootPath(path string) (string, error) {
	// turn path into directory, if it's a file
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		path = filepath.Dir(path)
	}

	for {
		if fi, err := os.Stat(filepath.Join(path, "package.json")); err == nil && !fi.IsDir() {
			return path, nil
		}

		d := filepath.Dir(path)
		if d == path {
			break
		}

		path = d
	}

	return "", errors.New("no package.json found")
}
