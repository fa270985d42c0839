package parser

import (
	"fmt"
	"strings"
)

// BuildContext flattens the scraped fields into the prose passed to the
// question answering model. It is a pure function of its arguments.
func BuildContext(title, discountPrice, actualPrice string, features, specs []string) (string, error) {
	if len(specs)%2 != 0 {
		return "", &ExtractionError{
			Field: "specs",
			Err:   fmt.Errorf("%w: %d entries", ErrOddSpecs, len(specs)),
		}
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(discountPrice)
	b.WriteString(". ")
	b.WriteString(actualPrice)
	b.WriteString(".\n")

	for _, feature := range features {
		b.WriteString(feature)
		b.WriteString(", ")
	}

	for i := 0; i < len(specs); i += 2 {
		b.WriteString(specs[i])
		b.WriteString(" ")
		b.WriteString(specs[i+1])
		b.WriteString(", ")
	}

	context := b.String()
	return context[:len(context)-2] + ".\n", nil
}
