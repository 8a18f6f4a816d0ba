package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/ldblocks"
)

// Run executes the save command.
func (c *SaveCmd) Run(deps *Dependencies) error {
	text, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	isRevision := c.RevisionOf != ""
	if isRevision {
		if err := deps.Revisions.RegisterRevision(deps.Ctx, c.ID, c.RevisionOf); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
			return err
		}
	}

	if err := deps.Hook.OnSave(deps.Ctx, c.ID, string(text), isRevision); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	if isRevision {
		fmt.Fprintf(deps.Stdout, "Saved document %s (revision %s)\n", c.RevisionOf, c.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Saved document %s\n", c.ID)
	return nil
}
