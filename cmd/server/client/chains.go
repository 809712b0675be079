package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
)

var (
	chainFile     string
	chainAffinity string
)

var saveChainCmd = &cobra.Command{
	Use:   "save-chain",
	Short: "Store a chain definition from a YAML or JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var chain actions.Chain
		if err := readDocument(cmd, chainFile, &chain); err != nil {
			return err
		}

		var resp v1alpha1.SaveChainResponse
		if err := call(cmd, v1alpha1.MethodSaveChain, &v1alpha1.SaveChainRequest{Chain: &chain}, &resp); err != nil {
			for _, msg := range errors.FieldMessages(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", msg)
			}
			return err
		}

		verb := "Updated"
		if resp.Created {
			verb = "Created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s chain %s (version %d, %d nodes)\n",
			verb, resp.Chain.ID, resp.Chain.Version, len(resp.Chain.Nodes))
		for _, w := range resp.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", w)
		}
		return nil
	},
}

var getChainCmd = &cobra.Command{
	Use:   "get-chain <chain-id>",
	Short: "Print a stored chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp v1alpha1.GetChainResponse
		if err := call(cmd, v1alpha1.MethodGetChain, &v1alpha1.GetChainRequest{ChainID: args[0]}, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var listChainsCmd = &cobra.Command{
	Use:   "list-chains",
	Short: "List stored chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp v1alpha1.ListChainsResponse
		if err := call(cmd, v1alpha1.MethodListChains, &v1alpha1.ListChainsRequest{Affinity: chainAffinity}, &resp); err != nil {
			return err
		}

		if len(resp.Chains) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No chains found")
			return nil
		}
		for _, c := range resp.Chains {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-24s nodes=%d affinities=%v\n",
				c.ID, c.Name, len(c.Nodes), c.Affinities)
		}
		return nil
	},
}

var deleteChainCmd = &cobra.Command{
	Use:   "delete-chain <chain-id>",
	Short: "Delete a stored chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp v1alpha1.DeleteChainResponse
		if err := call(cmd, v1alpha1.MethodDeleteChain, &v1alpha1.DeleteChainRequest{ChainID: args[0]}, &resp); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted chain %s\n", args[0])
		return nil
	},
}

func init() {
	saveChainCmd.Flags().StringVarP(&chainFile, "file", "f", "", "Chain file (YAML or JSON, - for stdin)")
	_ = saveChainCmd.MarkFlagRequired("file")

	listChainsCmd.Flags().StringVar(&chainAffinity, "affinity", "", "Only list chains with this affinity")
}
