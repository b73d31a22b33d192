package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common simulator workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, true, "")

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Play a Session",
					commands: []string{
						"simtrader                       # Start trading with defaults",
						"simtrader play --seed 42        # Repeatable price moves",
						"simtrader --debug play          # Diagnostic logs on stderr",
					},
				},
				{
					title: "Inspect the Market",
					commands: []string{
						"simtrader market                # Opening listings",
						"simtrader market --json         # Listings as JSON",
					},
				},
				{
					title: "Customize the Market",
					commands: []string{
						"simtrader config template > ~/.config/simtrader/config.toml",
						"simtrader config validate       # Check the edited file",
						"simtrader config show           # Effective settings",
						"SIMTRADER_MARKET_VOLATILITY_PERCENT=10 simtrader",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			return nil
		},
	}
}
