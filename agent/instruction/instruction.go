// Package instruction composes the system instruction handed to a chat
// model, optionally with few-shot input/output examples.
package instruction

import "strings"

// Example is one few-shot input/output pair.
type Example struct {
	Input  string
	Output string
}

// Instruction is immutable after construction. Example order is
// significant: it is the order the pairs are shown to the model.
type Instruction struct {
	system   string
	examples []Example
}

func New(system string) Instruction {
	return Instruction{system: strings.TrimSpace(system)}
}

func NewFewShot(system string, examples []Example) Instruction {
	copied := make([]Example, len(examples))
	copy(copied, examples)
	return Instruction{
		system:   strings.TrimSpace(system),
		examples: copied,
	}
}

// Render produces the final instruction text. It is a pure function of
// the instruction's fields. The "Examples:" header appears only when at
// least one example exists, so a plain instruction renders to just the
// system text.
func (i Instruction) Render() string {
	if len(i.examples) == 0 {
		return i.system
	}

	var b strings.Builder
	b.WriteString(i.system)
	b.WriteString("\n\nExamples:\n")
	for n, ex := range i.examples {
		if n > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Input: ")
		b.WriteString(ex.Input)
		b.WriteString("\nOutput: ")
		b.WriteString(ex.Output)
	}
	return b.String()
}
