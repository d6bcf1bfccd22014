package shopping

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"fresco"
)

// UnknownIngredient is the display name used when an ingredient id has no lookup entry.
const UnknownIngredient = "Unknown Ingredient"

// EmptyCartMessage is rendered in place of an empty shopping list.
const EmptyCartMessage = "Your shopping cart is empty"

// Line is one row of the consolidated shopping list.
type Line struct {
	ID     string  `json:"id"`
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
}

type Lines []Line

// Empty reports whether there is nothing to shop for.
func (l Lines) Empty() bool { return len(l) == 0 }

type key struct {
	id   string
	unit string
}

// Aggregate sums ingredient amounts across the selected recipes, scaled by each recipe's servings.
// Lines are keyed by (ingredient id, unit) and returned in the order their key was first seen.
// Servings are used as given.
func Aggregate(selected []fresco.SelectedRecipe, ingredients map[string]fresco.Ingredient) Lines {
	order := make([]key, 0)
	sums := make(map[key]float64)

	for _, recipe := range selected {
		for _, ing := range recipe.Ingredients {
			k := key{id: ing.ID, unit: ing.Unit}
			if _, ok := sums[k]; !ok {
				order = append(order, k)
			}
			sums[k] += ing.Amount * float64(recipe.Servings)
		}
	}

	out := make(Lines, 0, len(order))
	for _, k := range order {
		name := UnknownIngredient
		if ref, ok := ingredients[k.id]; ok && ref.Name != "" {
			name = ref.Name
		}
		out = append(out, Line{ID: k.id, Unit: k.unit, Amount: sums[k], Name: name})
	}
	return out
}

// Render writes the shopping list as text, one line per ingredient.
// Ingredients in shopped are checked off.
func Render(w io.Writer, lines Lines, shopped map[string]bool) error {
	if lines.Empty() {
		_, err := fmt.Fprintln(w, EmptyCartMessage)
		return err
	}

	for _, l := range lines {
		mark := "[ ]"
		if shopped[l.ID] {
			mark = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", mark, FormatAmount(l.Amount), l.Unit, l.Name); err != nil {
			return err
		}
	}
	return nil
}

// FormatAmount prints whole amounts without decimals and others with at most two.
func FormatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
