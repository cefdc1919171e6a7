package main

import (
	"sync"

	"github.com/maauso/kling-go/internal/bootstrap"
	"github.com/maauso/kling-go/internal/config"
)

type commandContext struct {
	jsonFlag *bool

	depsOnce sync.Once
	deps     *bootstrap.Dependencies
	depsErr  error
}

func newCommandContext(jsonFlag *bool) *commandContext {
	return &commandContext{jsonFlag: jsonFlag}
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureDeps() (*bootstrap.Dependencies, error) {
	c.depsOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.depsErr = err
			return
		}
		c.deps, c.depsErr = bootstrap.NewDependencies(cfg, cfg.NewLogger())
	})
	return c.deps, c.depsErr
}

// withDeps runs fn with initialized dependencies and closes the client when
// fn returns. Each process runs a single command.
func (c *commandContext) withDeps(fn func(*bootstrap.Dependencies) error) error {
	deps, err := c.ensureDeps()
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()
	return fn(deps)
}
