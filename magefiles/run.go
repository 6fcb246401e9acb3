//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo in a window.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "./cmd/demo", "-windowed"), withStream())
	return err
}

// Runs the demo inside the ImGui inspector.
func (Run) Inspector() error {
	fmt.Println("Run inspector...")
	_, err := executeCmd("go", withArgs("run", "./cmd/inspector", "-windowed"), withStream())
	return err
}

// Runs the demo with CPU profiling enabled.
func (Run) Profile() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/demo", "-windowed", "-profile"), withStream())
	return err
}
