package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
)

var rollModifier string

var rollCmd = &cobra.Command{
	Use:   "roll <formula>",
	Short: "Roll a dice formula",
	Long:  `Roll a dice formula such as 2d6+3 or 1d20-1d4 on the server.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &v1alpha1.RollFormulaRequest{
			Formula:  args[0],
			Modifier: actions.RollModifier(rollModifier),
		}

		var resp v1alpha1.RollFormulaResponse
		if err := call(cmd, v1alpha1.MethodRollFormula, req, &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rolled %s: %v", resp.Formula, resp.Dice)
		if len(resp.Discarded) > 0 {
			fmt.Fprintf(out, " (discarded %v)", resp.Discarded)
		}
		if resp.Modifier != 0 {
			fmt.Fprintf(out, " %+d", resp.Modifier)
		}
		fmt.Fprintf(out, " = %d\n", resp.Total)
		switch resp.Natural {
		case 20:
			fmt.Fprintln(out, "Natural 20!")
		case 1:
			fmt.Fprintln(out, "Natural 1")
		}
		return nil
	},
}

func init() {
	rollCmd.Flags().StringVar(&rollModifier, "mode", "", "Roll modifier (normal, advantage, disadvantage)")
}
