package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/ldblocks"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	page, err := c.loadPage(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	head, err := ldblocks.LoadRenderHead(deps.Ctx, deps.Records, deps.Index, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	out, err := deps.Injector.Inject(page, head)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, out)
	return nil
}

func (c *RenderCmd) loadPage(deps *Dependencies) (string, error) {
	if strings.HasPrefix(c.Page, "http://") || strings.HasPrefix(c.Page, "https://") {
		return deps.Fetcher.Fetch(deps.Ctx, c.Page)
	}
	buf, err := os.ReadFile(c.Page)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
