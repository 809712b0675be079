package main

import (
	"os"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/yamlconv"
)

// Scenario is a chain plus the caster and options to run it with.
// Files are YAML; JSON works too since it is valid YAML.
type Scenario struct {
	Chain   *actions.Chain          `json:"chain"`
	Caster  *actions.CasterSnapshot `json:"caster"`
	Options actions.Options         `json:"options"`
}

// LoadScenario reads a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read %s", path)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML or JSON scenario content
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yamlconv.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Chain == nil {
		return nil, errors.InvalidArgument("scenario has no chain")
	}
	if sc.Caster == nil {
		sc.Caster = &actions.CasterSnapshot{ID: "simulated_caster"}
	}
	return &sc, nil
}
