package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
)

var (
	mitigateSubtype     string
	mitigatePhysical    int
	mitigateMagic       int
	mitigateMultipliers map[string]string
	mitigateUndead      bool
	mitigateUndeadBonus int
)

var mitigateCmd = &cobra.Command{
	Use:   "mitigate <raw-damage>",
	Short: "Apply armor, multipliers and the undead bonus to a damage value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid raw damage %q: %w", args[0], err)
		}

		multipliers, err := parseMultipliers(mitigateMultipliers)
		if err != nil {
			return err
		}

		req := &v1alpha1.ResolveDamageRequest{
			Raw:     raw,
			Subtype: mitigateSubtype,
			Profile: mitigation.Profile{
				PhysicalArmor: mitigatePhysical,
				MagicArmor:    mitigateMagic,
				Multipliers:   multipliers,
				Undead:        mitigateUndead,
				UndeadBonus:   mitigateUndeadBonus,
			},
		}

		var resp v1alpha1.ResolveDamageResponse
		if err := call(cmd, v1alpha1.MethodResolveDamage, req, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp.Breakdown)
	},
}

func init() {
	mitigateCmd.Flags().StringVar(&mitigateSubtype, "type", "", "Damage subtype (fire, physical, necrotic, ...)")
	mitigateCmd.Flags().IntVar(&mitigatePhysical, "physical-armor", 0, "Physical armor")
	mitigateCmd.Flags().IntVar(&mitigateMagic, "magic-armor", 0, "Magic armor")
	mitigateCmd.Flags().StringToStringVar(&mitigateMultipliers, "multiplier", nil, "Per-subtype multipliers as type=factor")
	mitigateCmd.Flags().BoolVar(&mitigateUndead, "undead", false, "Target is undead")
	mitigateCmd.Flags().IntVar(&mitigateUndeadBonus, "undead-bonus", 0, "Undead bonus override")
}

func parseMultipliers(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for subtype, factor := range raw {
		f, err := strconv.ParseFloat(factor, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid multiplier %s=%s: %w", subtype, factor, err)
		}
		out[subtype] = f
	}
	return out, nil
}
