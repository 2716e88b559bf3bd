//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const fixtureDir = "testdata"

// Test groups test targets (all, unit, cover, fixtures).
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs every test without the race detector.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover writes a coverage profile to bin/coverage.out and prints the summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Fixtures builds first, then parses testdata/valid with the binary and
// expects every file in testdata/invalid to be rejected.
func (Test) Fixtures() error {
	mg.Deps(Build)

	valid, err := filepath.Glob(filepath.Join(fixtureDir, "valid", "*.obj"))
	if err != nil {
		return err
	}
	if len(valid) > 0 {
		if err := sh.RunV(binaryPath(), append([]string{"parse"}, valid...)...); err != nil {
			return err
		}
	}

	invalid, err := filepath.Glob(filepath.Join(fixtureDir, "invalid", "*.obj"))
	if err != nil {
		return err
	}
	for _, path := range invalid {
		ran, err := sh.Exec(nil, os.Stdout, os.Stderr, binaryPath(), "parse", path)
		if !ran {
			return err
		}
		if sh.ExitStatus(err) != 1 {
			return fmt.Errorf("%s: want exit status 1, got %d", path, sh.ExitStatus(err))
		}
	}
	return nil
}
