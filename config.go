// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.xrstf.de/jsimps/pkg/jsimps"
)

const defaultConfigFile = ".jsimps.yaml"

type configuration struct {
	jsimps.Config `yaml:",inline"`

	Exclude []string `yaml:"exclude"`
}

// loadConfiguration reads the given file. If filename is empty, the
// .jsimps.yaml in the project root is used if it exists, otherwise the
// built-in defaults apply.
func loadConfiguration(filename string, projectRoot string) (*configuration, error) {
	if filename == "" {
		if projectRoot == "" {
			return &configuration{}, nil
		}

		filename = filepath.Join(projectRoot, defaultConfigFile)
		if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
			return &configuration{}, nil
		}
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &configuration{}
	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return c, nil
}
