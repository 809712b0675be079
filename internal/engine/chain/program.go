package chain

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/transitions"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// Program is a chain prepared for repeated execution: nodes sorted by
// order, jump targets indexed and guards compiled
type Program struct {
	Chain    *actions.Chain
	Warnings []string

	nodes []compiledNode
	index map[string]int
}

type compiledNode struct {
	node         actions.Node
	precondition *transitions.Guard
	rules        transitions.Rules
	branch       transitions.Guard
}

// Len returns the number of executable nodes
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.nodes)
}

// IterationCap is the most steps a run of this program may take
func (p *Program) IterationCap() int {
	return max(MinIterationCap, IterationsPerNode*p.Len())
}

// Compile prepares a chain. Problems that execution would otherwise trip
// over are collected as warnings; compilation itself never fails.
func Compile(chain *actions.Chain) *Program {
	p := &Program{Chain: chain, index: make(map[string]int)}
	if chain == nil {
		return p
	}

	sorted := make([]actions.Node, len(chain.Nodes))
	copy(sorted, chain.Nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	p.nodes = make([]compiledNode, 0, len(sorted))
	for i, n := range sorted {
		cn := compiledNode{node: n}

		if n.ID != "" {
			if _, dup := p.index[n.ID]; dup {
				p.warnf("duplicate node id %q, jumps resolve to the first", n.ID)
			} else {
				p.index[n.ID] = i
			}
		}

		if n.Condition != nil && !n.Condition.IsAlways() {
			g, err := transitions.NewGuard(*n.Condition)
			if err != nil {
				p.warnf("node %q precondition: %v", n.ID, err)
			}
			cn.precondition = &g
		}

		rules, errs := transitions.Compile(n.Transitions)
		for _, err := range errs {
			p.warnf("node %q: %v", n.ID, err)
		}
		cn.rules = rules

		switch step := n.Step.(type) {
		case actions.Branch:
			g, err := transitions.NewGuard(step.Condition)
			if err != nil {
				p.warnf("node %q branch condition: %v", n.ID, err)
			}
			cn.branch = g
		case actions.UnknownStep:
			p.warnf("node %q has unknown type %q", n.ID, step.Type)
		case nil:
			p.warnf("node %q has no step", n.ID)
		}

		p.nodes = append(p.nodes, cn)
	}

	for _, cn := range p.nodes {
		for _, target := range cn.targets() {
			if !p.resolvable(target) {
				p.warnf("node %q jumps to unknown node %q", cn.node.ID, target)
			}
		}
	}

	return p
}

func (cn compiledNode) targets() []string {
	var out []string
	for _, r := range cn.rules {
		out = append(out, r.Target)
	}
	if cn.node.Next != "" {
		out = append(out, cn.node.Next)
	}
	switch step := cn.node.Step.(type) {
	case actions.Branch:
		out = append(out, step.TrueTarget, step.FalseTarget)
	case actions.Goto:
		out = append(out, step.Target)
	}
	return out
}

func (p *Program) resolvable(target string) bool {
	switch target {
	case "", actions.TargetNext, actions.TargetStop:
		return true
	}
	_, ok := p.index[target]
	return ok
}

func (p *Program) warnf(format string, args ...interface{}) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}
