// Package models defines data structures for run configuration.
package models

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	DefaultFolder    = "texts"
	DefaultExtension = ".txt"
	DefaultStrategy  = "block"
)

// RunConfig holds runtime configuration for a counting run.
// All values come from CLI flags, not external config files.
type RunConfig struct {
	Folder      string
	Extension   string
	WorkerCount int
	Strategy    string
}

// Validate fills in defaults and rejects values that cannot be run.
// A zero WorkerCount means one worker per logical CPU.
func (c *RunConfig) Validate() error {
	if c.Folder == "" {
		c.Folder = DefaultFolder
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}

	if c.WorkerCount < 0 {
		return fmt.Errorf("invalid worker count %d: must be positive", c.WorkerCount)
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	return nil
}
