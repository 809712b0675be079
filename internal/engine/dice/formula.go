// Package dice parses and evaluates dice formulas such as "2d6+3", "-1d4"
// and "d20" against an injected rpg-toolkit roller
package dice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

const (
	// MaxDiceCount bounds a single group so a typo cannot roll millions of dice
	MaxDiceCount = 1000

	// MaxDieSides bounds the face count of a single die
	MaxDieSides = 100000
)

var (
	diceTermRegex     = regexp.MustCompile(`^(\d*)d(\d+)$`)
	constantTermRegex = regexp.MustCompile(`^\d+$`)
)

// Group is NdS with a signed count
type Group struct {
	Count int
	Sides int
}

// Formula is a parsed dice formula. The zero value is invalid.
type Formula struct {
	Raw      string
	Groups   []Group
	Modifier int
	valid    bool
}

// Valid reports whether the formula parsed
func (f Formula) Valid() bool {
	return f.valid
}

// Parse parses a formula made of NdS, dS and integer terms joined by + or -.
// On failure it returns the zero Formula and an InvalidArgument error.
func Parse(raw string) (Formula, error) {
	cleaned := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if cleaned == "" {
		return Formula{}, errors.InvalidArgument("dice formula is empty")
	}

	f := Formula{Raw: raw}
	sign := 1
	start := 0
	expectTerm := true

	flush := func(term string) error {
		if term == "" {
			return errors.InvalidArgumentf("invalid dice formula: %s", raw)
		}
		if m := diceTermRegex.FindStringSubmatch(term); m != nil {
			count := 1
			if m[1] != "" {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return errors.InvalidArgumentf("invalid dice count in formula: %s", raw)
				}
				count = n
			}
			sides, err := strconv.Atoi(m[2])
			if err != nil {
				return errors.InvalidArgumentf("invalid die size in formula: %s", raw)
			}
			if count <= 0 || sides <= 0 {
				return errors.InvalidArgumentf("dice count and size must be positive: %s", raw)
			}
			if count > MaxDiceCount || sides > MaxDieSides {
				return errors.OutOfRangef("dice formula too large: %s", raw)
			}
			f.Groups = append(f.Groups, Group{Count: sign * count, Sides: sides})
			return nil
		}
		if constantTermRegex.MatchString(term) {
			n, err := strconv.Atoi(term)
			if err != nil {
				return errors.InvalidArgumentf("invalid modifier in formula: %s", raw)
			}
			f.Modifier += sign * n
			return nil
		}
		return errors.InvalidArgumentf("invalid dice formula: %s", raw)
	}

	for i := 0; i < len(cleaned); i++ {
		c := cleaned[i]
		if c != '+' && c != '-' {
			expectTerm = false
			continue
		}
		if i == 0 {
			if c == '-' {
				sign = -1
			}
			start = 1
			continue
		}
		if expectTerm {
			return Formula{}, errors.InvalidArgumentf("invalid dice formula: %s", raw)
		}
		if err := flush(cleaned[start:i]); err != nil {
			return Formula{}, err
		}
		sign = 1
		if c == '-' {
			sign = -1
		}
		start = i + 1
		expectTerm = true
	}
	if err := flush(cleaned[start:]); err != nil {
		return Formula{}, err
	}

	f.valid = true
	return f, nil
}

// MustParse parses a formula and panics on error. Only for literals.
func MustParse(raw string) Formula {
	f, err := Parse(raw)
	if err != nil {
		panic("dice: MustParse " + raw + ": " + err.Error())
	}
	return f
}

// String renders the canonical form, e.g. "4d6+3" or "-1d4"
func (f Formula) String() string {
	if !f.valid {
		return f.Raw
	}

	var b strings.Builder
	for i, g := range f.Groups {
		switch {
		case g.Count < 0:
			b.WriteString("-")
			b.WriteString(strconv.Itoa(-g.Count))
		case i > 0:
			b.WriteString("+")
			b.WriteString(strconv.Itoa(g.Count))
		default:
			b.WriteString(strconv.Itoa(g.Count))
		}
		b.WriteString("d")
		b.WriteString(strconv.Itoa(g.Sides))
	}

	switch {
	case f.Modifier > 0 && len(f.Groups) > 0:
		b.WriteString("+")
		b.WriteString(strconv.Itoa(f.Modifier))
	case f.Modifier != 0 || len(f.Groups) == 0:
		b.WriteString(strconv.Itoa(f.Modifier))
	}
	return b.String()
}

// MultiplyDice multiplies every group count by n, leaving the modifier alone
func (f Formula) MultiplyDice(n int) Formula {
	if !f.valid || n == 1 {
		return f
	}
	out := Formula{Raw: f.Raw, Modifier: f.Modifier, valid: true}
	out.Groups = make([]Group, len(f.Groups))
	for i, g := range f.Groups {
		out.Groups[i] = Group{Count: g.Count * n, Sides: g.Sides}
	}
	out.Raw = out.String()
	return out
}

// WithModifier returns a copy with delta added to the flat modifier
func (f Formula) WithModifier(delta int) Formula {
	if !f.valid || delta == 0 {
		return f
	}
	out := Formula{Raw: f.Raw, Groups: append([]Group(nil), f.Groups...), Modifier: f.Modifier + delta, valid: true}
	out.Raw = out.String()
	return out
}

// HasD20 reports whether any group rolls d20s
func (f Formula) HasD20() bool {
	for _, g := range f.Groups {
		if g.Sides == 20 && g.Count != 0 {
			return true
		}
	}
	return false
}

// IsLoneD20 reports whether the only dice rolled are a single d20. A flat
// modifier is allowed.
func (f Formula) IsLoneD20() bool {
	return len(f.Groups) == 1 && f.Groups[0].Count == 1 && f.Groups[0].Sides == 20
}

// DoubleDice doubles the dice of a formula string for critical hits.
// Unparsable input is returned unchanged.
func DoubleDice(raw string) string {
	f, err := Parse(raw)
	if err != nil {
		return raw
	}
	return f.MultiplyDice(2).String()
}
