package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
)

var historyCmd = &cobra.Command{
	Use:   "history <caster-id>",
	Short: "Show a caster's recent executions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp v1alpha1.GetHistoryResponse
		if err := call(cmd, v1alpha1.MethodGetHistory, &v1alpha1.GetHistoryRequest{CasterID: args[0]}, &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resp.History == nil || len(resp.History.Entries) == 0 {
			fmt.Fprintf(out, "No executions for %s\n", args[0])
			return nil
		}

		for _, e := range resp.History.Entries {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			if e.Error != "" {
				status = "error: " + e.Error
			}
			fmt.Fprintf(out, "%s  %-20s %-16s damage=%d %s cost=%d  %s\n",
				e.ExecutedAt.Format("2006-01-02 15:04:05"), e.ExecutionID, e.ChainID,
				e.TotalDamage, e.InferredDamageType, e.ResolvedResourceCost, status)
		}
		return nil
	},
}
