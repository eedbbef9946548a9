package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/documenter_system.txt
	documenterSystemRaw string

	//go:embed template/documenter_example_input.txt
	documenterExampleInputRaw string

	//go:embed template/documenter_example_output.txt
	documenterExampleOutputRaw string

	//go:embed template/assistant_system.txt
	assistantSystemRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	DocumenterSystem        string
	DocumenterExampleInput  string
	DocumenterExampleOutput string
	AssistantSystem         string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		DocumenterSystem:        strings.TrimSpace(documenterSystemRaw),
		DocumenterExampleInput:  strings.TrimSpace(documenterExampleInputRaw),
		DocumenterExampleOutput: strings.TrimSpace(documenterExampleOutputRaw),
		AssistantSystem:         strings.TrimSpace(assistantSystemRaw),
	}
}
