// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const scenarioDir = "internal/scenario/testdata"

// Test groups test targets (all, unit, race, scenarios).
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs all tests in short mode, which skips the registry property suite.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Race runs all tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Scenarios builds first, then runs every scenario in the testdata
// directory, each against its own registry.
func (Test) Scenarios() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.yaml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No scenarios found.")
		return nil
	}
	bin := filepath.Join(binaryDir, binaryName)
	for _, f := range files {
		if err := sh.RunV(bin, "run", f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}
