// Package commands contains the CLI commands for the application
package commands

import (
	"context"
)

// Flags holds global command line values. Empty values leave the config file untouched.
type Flags struct {
	LogLevel string
	Config   string
	Input    string
	Pattern  string
	Output   string
	Language string
	Dialect  string
	Strict   bool
}

type Controller struct {
	Flags *Flags
}

// Generate runs one generation pass
func (c *Controller) Generate(ctx context.Context) error {
	return NewGenerateCommand(c.Flags).Execute(ctx)
}

// Watch regenerates whenever schema documents change
func (c *Controller) Watch(ctx context.Context) error {
	return NewWatchCommand(c.Flags).Execute(ctx)
}

// Check verifies generated files are up to date
func (c *Controller) Check(ctx context.Context) error {
	return NewCheckCommand(c.Flags).Execute(ctx)
}

// Init writes a new elemgen.json
func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand().Run(ctx)
}
