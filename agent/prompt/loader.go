package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/financial.txt
	financialRaw string

	//go:embed template/technical.txt
	technicalRaw string

	//go:embed template/sales.txt
	salesRaw string

	//go:embed template/general.txt
	generalRaw string
)

// PromptSet holds the loaded system instructions.
type PromptSet struct {
	Router    string
	Financial string
	Technical string
	Sales     string
	General   string
}

// LoadPromptSet returns the embedded prompts, trimmed. Safe to call
// concurrently.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Router:    strings.TrimSpace(routerRaw),
		Financial: strings.TrimSpace(financialRaw),
		Technical: strings.TrimSpace(technicalRaw),
		Sales:     strings.TrimSpace(salesRaw),
		General:   strings.TrimSpace(generalRaw),
	}
}
