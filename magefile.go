//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/mandel"

// Default target - build the binary
var Default = Build

// Build builds the mandel binary
func Build() error {
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", binary, "./cmd/mandel")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the concurrent packages under the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./internal/render/...", "./internal/analysis/...")
}

// QA runs formatting and vet checks before the tests
func QA() error {
	if err := sh.RunV("go", "fmt", "./..."); err != nil {
		return fmt.Errorf("format check failed: %w", err)
	}
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	mg.Deps(Test, Race)
	return nil
}

// Sample renders the default view next to the binary
func Sample() error {
	mg.Deps(Build)
	return sh.RunV(binary, "render", "800", "600", "-t", "4", "--out", "bin/sample.png", "--thumbnail", "128")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
