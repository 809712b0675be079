package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

var (
	scenarioFile string
	simRuns      int
	simJSON      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a chain locally from a scenario file",
	Long: `Run a chain locally without a server. The scenario file holds the chain,
the caster snapshot and execution options as YAML or JSON. With --runs above 1
a damage and success summary is printed instead of a single result.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "Scenario file (YAML or JSON)")
	simulateCmd.Flags().IntVarP(&simRuns, "runs", "n", 1, "Number of executions")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "Print JSON output")
	_ = simulateCmd.MarkFlagRequired("file")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simRuns < 1 {
		return errors.InvalidArgument("runs must be at least 1")
	}

	sc, err := LoadScenario(scenarioFile)
	if err != nil {
		return err
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		return err
	}

	results, warnings, err := simulate(cmd.Context(), eng, sc, simRuns)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, w := range warnings {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	if simRuns == 1 {
		if simJSON {
			return printJSON(out, results[0])
		}
		printResult(out, results[0])
		return nil
	}

	summary := Summarize(results)
	if simJSON {
		return printJSON(out, summary)
	}
	printSummary(out, summary)
	return nil
}

// simulate validates the scenario chain once and executes it runs times
func simulate(ctx context.Context, eng engine.Engine, sc *Scenario, runs int) ([]*actions.ExecutionResult, []string, error) {
	validation, err := eng.ValidateChain(ctx, &engine.ValidateChainInput{Chain: sc.Chain})
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid {
		return nil, nil, errors.InvalidArgumentf("invalid chain: %s", strings.Join(validation.Errors, "; "))
	}

	results := make([]*actions.ExecutionResult, 0, runs)
	for i := 0; i < runs; i++ {
		output, err := eng.ExecuteChain(ctx, &engine.ExecuteChainInput{
			Chain:   sc.Chain,
			Caster:  sc.Caster,
			Options: sc.Options,
		})
		if err != nil {
			return nil, nil, err
		}
		results = append(results, output.Result)
	}
	return results, validation.Warnings, nil
}

// Summary aggregates repeated executions of one chain
type Summary struct {
	Runs        int            `json:"runs"`
	Successes   int            `json:"successes"`
	Crits       int            `json:"crits"`
	CritFails   int            `json:"crit_fails"`
	Errors      int            `json:"errors"`
	MinDamage   int            `json:"min_damage"`
	MaxDamage   int            `json:"max_damage"`
	MeanDamage  float64        `json:"mean_damage"`
	MeanCost    float64        `json:"mean_cost"`
	DamageTypes map[string]int `json:"damage_types,omitempty"`
}

// Summarize folds execution results into a Summary
func Summarize(results []*actions.ExecutionResult) Summary {
	s := Summary{Runs: len(results), DamageTypes: map[string]int{}}
	if len(results) == 0 {
		return s
	}

	totalDamage, totalCost := 0, 0
	s.MinDamage = results[0].TotalDamage
	for _, r := range results {
		if r.Success {
			s.Successes++
		}
		if r.IsCrit {
			s.Crits++
		}
		if r.IsCritFail {
			s.CritFails++
		}
		if r.HasError() {
			s.Errors++
		}
		if r.TotalDamage < s.MinDamage {
			s.MinDamage = r.TotalDamage
		}
		if r.TotalDamage > s.MaxDamage {
			s.MaxDamage = r.TotalDamage
		}
		if r.InferredDamageType != "" {
			s.DamageTypes[r.InferredDamageType]++
		}
		totalDamage += r.TotalDamage
		totalCost += r.ResolvedResourceCost
	}
	s.MeanDamage = float64(totalDamage) / float64(len(results))
	s.MeanCost = float64(totalCost) / float64(len(results))
	return s
}

func printResult(w io.Writer, r *actions.ExecutionResult) {
	_, _ = fmt.Fprintf(w, "Chain: %s\n", r.ChainID)
	_, _ = fmt.Fprintf(w, "Success: %t", r.Success)
	if r.IsCrit {
		_, _ = fmt.Fprint(w, " (critical)")
	}
	if r.IsCritFail {
		_, _ = fmt.Fprint(w, " (critical failure)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Damage: %d %s\n", r.TotalDamage, r.InferredDamageType)
	for _, d := range r.DamageBreakdown {
		_, _ = fmt.Fprintf(w, "  %s: %s = %d %s\n", d.NodeID, d.Formula, d.Result, d.Type)
	}
	_, _ = fmt.Fprintf(w, "Resource cost: %d\n", r.ResolvedResourceCost)
	for _, rc := range r.PendingResourceChanges {
		_, _ = fmt.Fprintf(w, "  %+v\n", rc)
	}
	if len(r.Log) > 0 {
		_, _ = fmt.Fprintln(w, "Log:")
		for _, line := range r.Log {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
	_, _ = fmt.Fprintf(w, "Steps: %d\n", r.Steps)
	if r.HasError() {
		_, _ = fmt.Fprintf(w, "Error: %s\n", r.Error)
	}
}

func printSummary(w io.Writer, s Summary) {
	rate := func(n int) float64 { return 100 * float64(n) / float64(s.Runs) }

	_, _ = fmt.Fprintf(w, "Runs: %d\n", s.Runs)
	_, _ = fmt.Fprintf(w, "Success: %d (%.1f%%)\n", s.Successes, rate(s.Successes))
	_, _ = fmt.Fprintf(w, "Crits: %d (%.1f%%)  Crit fails: %d (%.1f%%)\n",
		s.Crits, rate(s.Crits), s.CritFails, rate(s.CritFails))
	_, _ = fmt.Fprintf(w, "Damage: min %d  max %d  mean %.2f\n", s.MinDamage, s.MaxDamage, s.MeanDamage)
	_, _ = fmt.Fprintf(w, "Mean cost: %.2f\n", s.MeanCost)
	for t, n := range s.DamageTypes {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", t, n)
	}
	if s.Errors > 0 {
		_, _ = fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
