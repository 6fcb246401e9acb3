//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the demo and inspector binaries into bin/.
func (Build) All() {
	mg.Deps(Build.Demo, Build.Inspector)
}

// Builds bin/demo.
func (Build) Demo() error {
	return goBuild("demo")
}

// Builds bin/inspector.
func (Build) Inspector() error {
	return goBuild("inspector")
}

// Runs the unit tests.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs go vet.
func Lint() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
