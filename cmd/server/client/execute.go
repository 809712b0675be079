package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
)

var (
	execChainID      string
	execChainFile    string
	execCasterFile   string
	execCasterID     string
	execStats        []string
	execModifier     string
	execTargets      int
	execProjectiles  int
	execOutputAsJSON bool
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a stored or inline chain",
	Long: `Execute a chain on the server. Use --chain for a stored chain or --file
for an inline definition. The caster comes from --caster-file or from
--caster-id plus repeated --stat name=value flags.`,
	RunE: runExecute,
}

func init() {
	executeCmd.Flags().StringVar(&execChainID, "chain", "", "Stored chain ID")
	executeCmd.Flags().StringVarP(&execChainFile, "file", "f", "", "Inline chain file (YAML or JSON)")
	executeCmd.Flags().StringVar(&execCasterFile, "caster-file", "", "Caster snapshot file (YAML or JSON)")
	executeCmd.Flags().StringVar(&execCasterID, "caster-id", "cli_caster", "Caster ID when no caster file is given")
	executeCmd.Flags().StringSliceVar(&execStats, "stat", nil, "Caster stat as name=value (repeatable)")
	executeCmd.Flags().StringVar(&execModifier, "roll", "", "Roll modifier (normal, advantage, disadvantage)")
	executeCmd.Flags().IntVar(&execTargets, "targets", 0, "Target count")
	executeCmd.Flags().IntVar(&execProjectiles, "projectiles", 0, "Projectile count")
	executeCmd.Flags().BoolVar(&execOutputAsJSON, "json", false, "Print the raw JSON result")
	executeCmd.MarkFlagsMutuallyExclusive("chain", "file")
	executeCmd.MarkFlagsOneRequired("chain", "file")
}

func runExecute(cmd *cobra.Command, args []string) error {
	req := &v1alpha1.ExecuteChainRequest{
		ChainID: execChainID,
		Options: actions.Options{
			TargetCount:     execTargets,
			ProjectileCount: execProjectiles,
			RollModifier:    actions.RollModifier(execModifier),
		},
	}

	if execChainFile != "" {
		var chain actions.Chain
		if err := readDocument(cmd, execChainFile, &chain); err != nil {
			return err
		}
		req.Chain = &chain
	}

	caster, err := buildCaster(cmd)
	if err != nil {
		return err
	}
	req.Caster = caster

	var resp v1alpha1.ExecuteChainResponse
	if err := call(cmd, v1alpha1.MethodExecuteChain, req, &resp); err != nil {
		return err
	}

	if execOutputAsJSON {
		return printJSON(cmd, resp)
	}

	out := cmd.OutOrStdout()
	r := resp.Result
	fmt.Fprintf(out, "Execution %s of %s\n", resp.ExecutionID, r.ChainID)
	fmt.Fprintf(out, "Success: %t  Crit: %t  Crit fail: %t\n", r.Success, r.IsCrit, r.IsCritFail)
	fmt.Fprintf(out, "Damage: %d %s\n", r.TotalDamage, r.InferredDamageType)
	fmt.Fprintf(out, "Resource cost: %d\n", r.ResolvedResourceCost)
	for _, roll := range r.RollHistory {
		fmt.Fprintf(out, "  roll %s %s -> %v = %d\n", roll.NodeID, roll.Formula, roll.Dice, roll.Total)
	}
	for _, line := range r.Log {
		fmt.Fprintf(out, "  %s\n", line)
	}
	if r.HasError() {
		fmt.Fprintf(out, "Error: %s\n", r.Error)
	}
	return nil
}

func buildCaster(cmd *cobra.Command) (*actions.CasterSnapshot, error) {
	if execCasterFile != "" {
		var caster actions.CasterSnapshot
		if err := readDocument(cmd, execCasterFile, &caster); err != nil {
			return nil, err
		}
		return &caster, nil
	}

	stats, err := parseStats(execStats)
	if err != nil {
		return nil, err
	}
	return &actions.CasterSnapshot{ID: execCasterID, Stats: stats}, nil
}

func parseStats(pairs []string) (map[string]int, error) {
	stats := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid stat %q, expected name=value", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid stat value %q: %w", pair, err)
		}
		stats[strings.TrimSpace(name)] = n
	}
	return stats, nil
}
