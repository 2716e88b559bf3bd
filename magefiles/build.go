//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the freeform project using Mage.
//
// Usage:
//
//	mage build          Compile freeform binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the race detector's overhead
//	mage test:cover     Write a coverage profile to bin/
//	mage test:fixtures  Parse the OBJ files under testdata/ with the binary
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install freeform to GOPATH/bin
//	mage stats          Print Go LOC and fixture counts as JSON
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "freeform"
	binaryDir  = "bin"
	cmdDir     = "./cmd/freeform"
	versionVar = "github.com/mesh-intelligence/freeform/internal/cli.Version"
)

// Build compiles the freeform binary to bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + versionVar + "=" + version()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", binaryPath(), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, binaryPath())
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}

// version describes HEAD, or "dev" outside a git checkout.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}
