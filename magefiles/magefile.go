//go:build mage

// Package main provides build targets for the registrar project using Mage.
//
// Usage:
//
//	mage build           Compile the registrar binary to bin/
//	mage test:all        Run every test
//	mage test:short      Run tests, skipping property-based exploration
//	mage test:cover      Run tests with a coverage profile in bin/
//	mage test:postgres   Run the postgres backend tests against $REGISTRAR_TEST_POSTGRES_DSN
//	mage lint            Run golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install registrar to GOPATH/bin
//	mage stats           Print Go LOC per package
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "registrar"
	binaryDir  = "bin"
	cmdDir     = "./cmd/registrar"
	modulePath = "github.com/mesh-intelligence/registrar"
)

// ldflags stamps the version from $REGISTRAR_VERSION, when set, into the
// binary.
func ldflags() string {
	v := os.Getenv("REGISTRAR_VERSION")
	if v == "" {
		return ""
	}
	return "-X " + modulePath + "/internal/cli.Version=" + v
}

// Build compiles the registrar binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
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
