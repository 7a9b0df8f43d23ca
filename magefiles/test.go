//go:build mage

package main

import (
	"errors"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	envTestDSN      = "SHELF_TEST_POSTGRES_DSN"
	postgresPackage = "./internal/postgres/..."
)

// Test groups test targets (all, unit, postgres).
type Test mg.Namespace

// All runs every test. Postgres tests skip unless SHELF_TEST_POSTGRES_DSN is set.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests with the database server unset, so postgres tests skip.
func (Test) Unit() error {
	return sh.RunWithV(map[string]string{envTestDSN: ""}, binGo, "test", "./...")
}

// Postgres runs the postgres backend tests. SHELF_TEST_POSTGRES_DSN must be set.
func (Test) Postgres() error {
	if os.Getenv(envTestDSN) == "" {
		return errors.New(envTestDSN + " is not set")
	}
	return sh.RunV(binGo, "test", "-v", "-count=1", postgresPackage)
}
