package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if c.Pipeline == "" {
		return c.listIndexed(deps)
	}

	pipeline, err := ldblocks.ParsePipeline(c.Pipeline)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	records, err := deps.Records.FindRecords(deps.Ctx, pipeline)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s records found. Use 'ldblocks save' to extract one.\n", pipeline.ShortName())
		return nil
	}

	for _, rec := range records {
		var contents []string
		if len(rec.StructuredData) > 0 {
			contents = append(contents, "structured-data")
		}
		if rec.CSS != "" {
			contents = append(contents, "css")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %v\n", rec.DocumentID, rec.LastUpdate.Format(time.RFC3339), contents)
	}

	return nil
}

func (c *ListCmd) listIndexed(deps *Dependencies) error {
	ids, err := deps.Index.FindDocumentIDs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents use blocks. Use 'ldblocks save' to add one.")
		return nil
	}

	for _, id := range ids {
		fmt.Fprintln(deps.Stdout, id)
	}
	return nil
}
