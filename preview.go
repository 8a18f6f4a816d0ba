package ldblocks

import (
	"strconv"
	"strings"
)

// FormatPreview renders extracted FAQ questions and HowTo data as Markdown
// for human review. Answers are converted with conv. Either input may be
// empty.
func FormatPreview(questions []Question, howTo *HowTo, conv Converter) (string, error) {
	var parts []string

	if len(questions) > 0 {
		var b strings.Builder
		b.WriteString("## FAQ\n")
		for _, q := range questions {
			answer, err := conv.Convert(q.AcceptedAnswer.Text)
			if err != nil {
				return "", err
			}
			b.WriteString("\n### " + q.Name + "\n\n")
			b.WriteString(strings.TrimSpace(answer) + "\n")
		}
		parts = append(parts, b.String())
	}

	if howTo != nil {
		var b strings.Builder
		b.WriteString("## " + howTo.Name + "\n")
		if howTo.Description != "" {
			b.WriteString("\n" + howTo.Description + "\n")
		}

		var steps []HowToStep
		for _, item := range howTo.Step {
			switch item := item.(type) {
			case HowToSection:
				b.WriteString("\n### " + item.Name + "\n\n")
				writeSteps(&b, item.ItemListElement)
			case HowToStep:
				steps = append(steps, item)
			}
		}
		if len(steps) > 0 {
			b.WriteString("\n")
			writeSteps(&b, steps)
		}
		parts = append(parts, b.String())
	}

	return strings.TrimSuffix(strings.Join(parts, "\n"), "\n"), nil
}

func writeSteps(b *strings.Builder, steps []HowToStep) {
	for i, s := range steps {
		b.WriteString(strconv.Itoa(i+1) + ". " + s.Text)
		if s.Image != "" {
			b.WriteString(" ![](" + s.Image + ")")
		}
		b.WriteString("\n")
	}
}
