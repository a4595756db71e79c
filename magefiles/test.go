//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Short runs every test with -short, which skips property-based tests.
func (Test) Short() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Cover runs every test and writes bin/coverage.out.
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

// Postgres runs the postgres backend tests. REGISTRAR_TEST_POSTGRES_DSN must
// point at a database the tests may write to.
func (Test) Postgres() error {
	if os.Getenv("REGISTRAR_TEST_POSTGRES_DSN") == "" {
		return fmt.Errorf("REGISTRAR_TEST_POSTGRES_DSN is not set")
	}
	return sh.RunV(binGo, "test", "-v", "./internal/postgres/...")
}
