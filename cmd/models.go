package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwiz/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List supported providers and their models",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providers := llm.Providers()
		if len(args) == 1 {
			if !llm.Known(args[0]) {
				return fmt.Errorf("unknown provider %q", args[0])
			}
			providers = []llm.Descriptor{llm.Lookup(args[0])}
		}
		for _, d := range providers {
			fmt.Printf("%s (%s)\n", d.Name, d.ID)
			fmt.Println(strings.Repeat("─", 48))
			for _, m := range d.Models {
				marker := " "
				if m.ID == d.DefaultModel {
					marker = "*"
				}
				free := ""
				if m.Free {
					free = "  [free]"
				}
				fmt.Printf("%s %-44s %s%s\n", marker, m.ID, m.Name, free)
			}
			fmt.Println()
		}
		fmt.Println("* default model. Select with QUIZWIZ_<PROVIDER>_MODEL.")
		return nil
	},
}
