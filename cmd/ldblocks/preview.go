package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/ldblocks"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	text, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	questions, err := deps.FAQ.ExtractFAQ(string(text))
	if err != nil && ldblocks.ErrorCode(err) != ldblocks.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	var howTo *ldblocks.HowTo
	var css string
	res, err := deps.HowTo.ExtractHowTo(string(text))
	switch {
	case err == nil:
		howTo, css = res.HowTo, res.CSS
	case ldblocks.ErrorCode(err) != ldblocks.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	out, err := ldblocks.FormatPreview(questions, howTo, deps.Converter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	if out == "" && css == "" {
		fmt.Fprintln(deps.Stdout, "No valid FAQ or HowTo blocks found.")
		return nil
	}
	if out != "" {
		fmt.Fprintln(deps.Stdout, out)
	}
	if css != "" {
		if out != "" {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "```css\n%s\n```\n", css)
	}
	return nil
}
