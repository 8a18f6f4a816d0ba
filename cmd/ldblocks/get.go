package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ldblocks"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	if c.CSS {
		return c.runCSS(deps)
	}

	pipelines := ldblocks.Pipelines
	if c.Pipeline != "" {
		pipeline, err := ldblocks.ParsePipeline(c.Pipeline)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
			return err
		}
		pipelines = []ldblocks.Pipeline{pipeline}
	}

	found := false
	for _, pipeline := range pipelines {
		rec, err := deps.Records.FindRecord(deps.Ctx, pipeline, c.ID)
		if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
			continue
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
			return err
		}
		if len(rec.StructuredData) == 0 {
			continue
		}

		var out bytes.Buffer
		if err := json.Indent(&out, rec.StructuredData, "", "  "); err != nil {
			return err
		}
		if len(pipelines) > 1 {
			fmt.Fprintf(deps.Stdout, "# %s\n", pipeline.ShortName())
		}
		fmt.Fprintln(deps.Stdout, out.String())
		found = true
	}

	if !found {
		err := ldblocks.Errorf(ldblocks.ENOTFOUND, "no structured data for document %q", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *GetCmd) runCSS(deps *Dependencies) error {
	rec, err := deps.Records.FindRecord(deps.Ctx, ldblocks.PipelineHowTo, c.ID)
	if err == nil && rec.CSS == "" {
		err = ldblocks.Errorf(ldblocks.ENOTFOUND, "no css for document %q", c.ID)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, rec.CSS)
	return nil
}
