package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		formula   string
		groups    []dice.Group
		modifier  int
		canonical string
	}{
		{
			name:      "dice with bonus",
			formula:   "2d6+3",
			groups:    []dice.Group{{Count: 2, Sides: 6}},
			modifier:  3,
			canonical: "2d6+3",
		},
		{
			name:      "negative group",
			formula:   "-1d4",
			groups:    []dice.Group{{Count: -1, Sides: 4}},
			canonical: "-1d4",
		},
		{
			name:      "implicit count",
			formula:   "d20",
			groups:    []dice.Group{{Count: 1, Sides: 20}},
			canonical: "1d20",
		},
		{
			name:      "mixed with whitespace and case",
			formula:   " 1D8 + 2d6 - 1d4 - 2 ",
			groups:    []dice.Group{{Count: 1, Sides: 8}, {Count: 2, Sides: 6}, {Count: -1, Sides: 4}},
			modifier:  -2,
			canonical: "1d8+2d6-1d4-2",
		},
		{
			name:      "flat only",
			formula:   "5",
			modifier:  5,
			canonical: "5",
		},
		{
			name:      "modifiers combine",
			formula:   "1d6+2+3-1",
			groups:    []dice.Group{{Count: 1, Sides: 6}},
			modifier:  4,
			canonical: "1d6+4",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := dice.Parse(tc.formula)
			require.NoError(t, err)
			assert.True(t, f.Valid())
			assert.Equal(t, tc.groups, f.Groups)
			assert.Equal(t, tc.modifier, f.Modifier)
			assert.Equal(t, tc.canonical, f.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, formula := range []string{"", "   ", "2d", "d", "abc", "2d6+", "2d6++3", "+", "0d6", "2d0", "1d6*2", "2x6"} {
		t.Run(formula, func(t *testing.T) {
			f, err := dice.Parse(formula)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.False(t, f.Valid())
		})
	}

	_, err := dice.Parse("5000d6")
	require.Error(t, err)
	assert.True(t, errors.IsOutOfRange(err))
}

func TestDoubleDice(t *testing.T) {
	testCases := map[string]string{
		"2d6+3":     "4d6+3",
		"2d6":       "4d6",
		"d20":       "2d20",
		"1d8+1d6-2": "2d8+2d6-2",
		"-1d4":      "-2d4",
		"7":         "7",
		"not dice":  "not dice",
		"3d10 + 1 ": "6d10+1",
	}

	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, dice.DoubleDice(in))
		})
	}
}

func TestFormula_MultiplyAndModify(t *testing.T) {
	f := dice.MustParse("2d8+1")

	tripled := f.MultiplyDice(3)
	assert.Equal(t, "6d8+1", tripled.String())
	assert.Equal(t, "2d8+1", f.String(), "original is untouched")

	bonus := f.WithModifier(2)
	assert.Equal(t, "2d8+3", bonus.String())
	assert.Equal(t, 3, bonus.Modifier)
}

func TestFormula_LoneD20(t *testing.T) {
	testCases := []struct {
		formula string
		lone    bool
		hasD20  bool
	}{
		{"d20", true, true},
		{"1d20+5", true, true},
		{"2d20", false, true},
		{"1d20+1d4", false, true},
		{"1d12", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.formula, func(t *testing.T) {
			f := dice.MustParse(tc.formula)
			assert.Equal(t, tc.lone, f.IsLoneD20())
			assert.Equal(t, tc.hasD20, f.HasD20())
		})
	}
}
