// Package main provides build targets for the atlas project using Mage.
//
// Usage:
//
//	mage build           Compile atlas binary to bin/
//	mage test:all        Run all tests
//	mage test:unit       Run tests in short mode
//	mage test:race       Run all tests with the race detector
//	mage test:scenarios  Build, then run every scenario under internal/scenario/testdata
//	mage vet             Run go vet
//	mage lint            Run go vet, then golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install atlas to GOPATH/bin
//	mage stats           Print Go LOC per package as JSON
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "atlas"
	binaryDir  = "bin"
	cmdDir     = "./cmd/atlas"
)

// Build compiles the atlas binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
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
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
