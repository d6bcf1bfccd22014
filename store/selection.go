package store

import (
	"context"

	"fresco"
)

// AddSelectedRecipe puts a recipe in the cart. A recipe that is already selected keeps its place
// and takes the new servings. Servings below 1 are stored as 1.
func (s *Store) AddSelectedRecipe(ctx context.Context, recipe fresco.SelectedRecipe) {
	if recipe.Servings < 1 {
		recipe.Servings = 1
	}
	recipe.Recipe = recipe.Recipe.Clone()

	s.mu.Lock()
	if i := s.indexLocked(recipe.ID); i >= 0 {
		s.selected[i].Servings = recipe.Servings
	} else {
		s.selected = append(s.selected, recipe)
	}
	s.servings[recipe.ID] = recipe.Servings
	s.mu.Unlock()

	s.record(fresco.Event{Action: "add_selected_recipe", RecipeID: recipe.ID, Servings: recipe.Servings})
	s.PersistCart(ctx)
}

// RemoveSelectedRecipe takes a recipe out of the cart.
func (s *Store) RemoveSelectedRecipe(ctx context.Context, recipeID string) {
	s.mu.Lock()
	i := s.indexLocked(recipeID)
	if i >= 0 {
		s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		return
	}
	s.record(fresco.Event{Action: "remove_selected_recipe", RecipeID: recipeID})
	s.PersistCart(ctx)
}

// ToggleSelection adds the recipe with one serving when selected is true and it is not already in
// the cart, or removes it when selected is false.
func (s *Store) ToggleSelection(ctx context.Context, recipe fresco.Recipe, selected bool) {
	if !selected {
		s.RemoveSelectedRecipe(ctx, recipe.ID)
		return
	}
	if s.IsSelected(recipe.ID) {
		return
	}
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe, Servings: 1})
}

// UpdateRecipeServings sets the servings of a selected recipe, clamped to at least 1.
func (s *Store) UpdateRecipeServings(ctx context.Context, recipeID string, servings int) {
	if servings < 1 {
		servings = 1
	}

	s.mu.Lock()
	i := s.indexLocked(recipeID)
	changed := i >= 0 && s.selected[i].Servings != servings
	if changed {
		s.selected[i].Servings = servings
		s.servings[recipeID] = servings
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.record(fresco.Event{Action: "update_recipe_servings", RecipeID: recipeID, Servings: servings})
	s.PersistCart(ctx)
}

func (s *Store) IsSelected(recipeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(recipeID) >= 0
}

// Servings is the servings counter shown for a recipe: the cart's value when selected, otherwise
// the last value the user picked, starting at 1.
func (s *Store) Servings(recipeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servingsLocked(recipeID)
}

func (s *Store) IncrementServings(ctx context.Context, recipeID string) int {
	return s.adjustServings(ctx, recipeID, 1)
}

// DecrementServings lowers the servings by one. At one serving it does nothing.
func (s *Store) DecrementServings(ctx context.Context, recipeID string) int {
	return s.adjustServings(ctx, recipeID, -1)
}

func (s *Store) adjustServings(ctx context.Context, recipeID string, delta int) int {
	s.mu.Lock()
	current := s.servingsLocked(recipeID)
	next := max(current+delta, 1)
	if next == current {
		s.mu.Unlock()
		return current
	}

	s.servings[recipeID] = next
	i := s.indexLocked(recipeID)
	if i >= 0 {
		s.selected[i].Servings = next
	}
	s.mu.Unlock()

	s.record(fresco.Event{Action: "adjust_servings", RecipeID: recipeID, Servings: next})
	if i >= 0 {
		s.PersistCart(ctx)
	}
	return next
}

func (s *Store) servingsLocked(recipeID string) int {
	if i := s.indexLocked(recipeID); i >= 0 {
		return s.selected[i].Servings
	}
	if n, ok := s.servings[recipeID]; ok && n >= 1 {
		return n
	}
	return 1
}

func (s *Store) indexLocked(recipeID string) int {
	for i, r := range s.selected {
		if r.ID == recipeID {
			return i
		}
	}
	return -1
}
