// Package actions holds the authored action chain model and the engine's
// input and output shapes
package actions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CurrentChainVersion is the newest chain format this build reads
const CurrentChainVersion = 1

// Resource kinds used by costs and resource steps
const (
	ResourceMana    = "mana"
	ResourceHealth  = "health"
	ResourceStamina = "stamina"
)

// Cost is a resource the chain consumes when it resolves
type Cost struct {
	ResourceKind string `json:"resource_kind"`
	Amount       int    `json:"amount"`
	ResourceID   string `json:"resource_id,omitempty"`
}

// Chain is an authored, ordered and possibly cyclic set of nodes
type Chain struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Version    int      `json:"version"`
	Nodes      []Node   `json:"nodes"`
	Costs      []Cost   `json:"costs,omitempty"`
	Affinities []string `json:"affinities,omitempty"`
}

// Node is one step of a chain. Step carries the type-specific payload.
type Node struct {
	ID          string
	Label       string
	Order       int
	Condition   *Condition
	Transitions []Transition
	Next        string
	Step        Step
}

// Type returns the node's step type
func (n Node) Type() StepType {
	if n.Step == nil {
		return ""
	}
	return n.Step.StepType()
}

// nodeHeader is the set of fields every node shares on the wire
type nodeHeader struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Label       string       `json:"label,omitempty"`
	Order       int          `json:"order"`
	Condition   *Condition   `json:"precondition,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
	Next        string       `json:"next,omitempty"`
}

// MarshalJSON flattens the header and payload into one object
func (n Node) MarshalJSON() ([]byte, error) {
	header := nodeHeader{
		ID:          n.ID,
		Type:        string(n.Type()),
		Label:       n.Label,
		Order:       n.Order,
		Condition:   n.Condition,
		Transitions: n.Transitions,
		Next:        n.Next,
	}

	merged := map[string]json.RawMessage{}
	if n.Step != nil {
		if _, unknown := n.Step.(UnknownStep); !unknown {
			payload, err := json.Marshal(n.Step)
			if err != nil {
				return nil, fmt.Errorf("marshal %s payload: %w", n.Type(), err)
			}
			if err := json.Unmarshal(payload, &merged); err != nil {
				return nil, fmt.Errorf("flatten %s payload: %w", n.Type(), err)
			}
		}
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	var headerFields map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &headerFields); err != nil {
		return nil, err
	}
	for k, v := range headerFields {
		merged[k] = v
	}

	return json.Marshal(merged)
}

// UnmarshalJSON decodes a flat node. Unrecognized types decode into
// UnknownStep so a single bad node cannot reject a whole chain.
func (n *Node) UnmarshalJSON(data []byte) error {
	var header nodeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}

	step, err := decodeStep(header.Type, data)
	if err != nil {
		return fmt.Errorf("node %q: %w", header.ID, err)
	}

	*n = Node{
		ID:          header.ID,
		Label:       header.Label,
		Order:       header.Order,
		Condition:   header.Condition,
		Transitions: header.Transitions,
		Next:        header.Next,
		Step:        step,
	}
	return nil
}

func decodeStep(rawType string, data []byte) (Step, error) {
	stepType := strings.ToLower(strings.TrimSpace(rawType))

	switch StepType(stepType) {
	case StepRollCheck, "roll_attack", "roll_cast":
		var s RollCheck
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		switch stepType {
		case "roll_attack":
			s.Kind = CheckAttack
		case "roll_cast":
			s.Kind = CheckCast
		}
		if s.Kind == "" {
			s.Kind = CheckPlain
		}
		return s, nil
	case StepRollDamage:
		return decodeAs[RollDamage](data)
	case StepRollDice:
		return decodeAs[RollDice](data)
	case StepRollTable:
		return decodeAs[RollTable](data)
	case StepDamageTiers:
		return decodeAs[DamageTiers](data)
	case StepBranch:
		return decodeAs[Branch](data)
	case StepGoto:
		return decodeAs[Goto](data)
	case StepStop:
		return Stop{}, nil
	case StepSetValue:
		return decodeAs[SetValue](data)
	case StepModifyResource:
		var s modifyResourceWire
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return ModifyResource{
			ResourceKind: s.ResourceKind,
			Operation:    s.Operation,
			Amount:       s.Amount.String(),
			ResourceID:   s.ResourceID,
		}, nil
	case StepMessage:
		return decodeAs[Message](data)
	default:
		return UnknownStep{Type: rawType}, nil
	}
}

func decodeAs[T Step](data []byte) (Step, error) {
	var s T
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// modifyResourceWire accepts the amount as either a number or a formula
type modifyResourceWire struct {
	ResourceKind string            `json:"resource_kind"`
	Operation    ResourceOperation `json:"operation"`
	Amount       Value             `json:"amount"`
	ResourceID   string            `json:"resource_id,omitempty"`
}
