package main

import (
	ldhttp "github.com/fwojciec/ldblocks/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := ldhttp.NewServer(deps.Records, deps.Index, deps.Injector, deps.Logger)
	if c.RenderRate > 0 {
		s.RenderLimiter = ldhttp.NewClientLimiter(c.RenderRate, c.RenderBurst)
	}
	return s.ListenAndServe(deps.Ctx, c.Addr)
}
