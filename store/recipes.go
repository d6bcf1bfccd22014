package store

import (
	"context"
	"log/slog"
	"slices"

	"fresco"
)

// FetchRecipes loads the page after lastEvaluatedID and appends it to the recipe list.
// Failures are logged and leave the list unchanged.
func (s *Store) FetchRecipes(ctx context.Context, lastEvaluatedID string) {
	page, err := s.api.ListRecipes(ctx, lastEvaluatedID)
	if err != nil {
		slog.Error("STORE: Failed to fetch recipes", "last_evaluated_id", lastEvaluatedID, "error", err)
		s.record(fresco.Event{Action: "fetch_recipes", Error: err.Error()})
		return
	}

	s.mu.Lock()
	if lastEvaluatedID == "" {
		s.recipes = slices.Clone(page.Recipes)
	} else {
		s.recipes = append(s.recipes, page.Recipes...)
	}
	s.lastEvaluatedID = page.LastEvaluatedID
	s.mu.Unlock()

	slog.Info("STORE: Recipes fetched", "count", len(page.Recipes), "has_more", page.LastEvaluatedID != "")
	s.record(fresco.Event{Action: "fetch_recipes", Count: len(page.Recipes)})
}

// SearchRecipes replaces the recipe list with the first page of matches for term.
// An empty term reloads the unfiltered first page.
func (s *Store) SearchRecipes(ctx context.Context, term string) {
	if term == "" {
		s.FetchRecipes(ctx, "")
		return
	}

	page, err := s.api.SearchRecipes(ctx, term)
	if err != nil {
		slog.Error("STORE: Failed to search recipes", "term", term, "error", err)
		s.record(fresco.Event{Action: "search_recipes", Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.recipes = slices.Clone(page.Recipes)
	s.lastEvaluatedID = page.LastEvaluatedID
	s.mu.Unlock()

	slog.Info("STORE: Recipes searched", "term", term, "count", len(page.Recipes))
	s.record(fresco.Event{Action: "search_recipes", Count: len(page.Recipes)})
}

// FetchRecipe loads a recipe's detail for the signed-in user into the current recipe.
func (s *Store) FetchRecipe(ctx context.Context, recipeID string) {
	user, err := s.currentUser(ctx)
	if err != nil {
		slog.Error("STORE: Error fetching recipe", "recipe_id", recipeID, "error", err)
		s.record(fresco.Event{Action: "fetch_recipe", RecipeID: recipeID, Error: err.Error()})
		return
	}

	recipe, err := s.api.GetRecipe(ctx, recipeID, user.ID)
	if err != nil {
		slog.Error("STORE: Error fetching recipe", "recipe_id", recipeID, "error", err)
		s.record(fresco.Event{Action: "fetch_recipe", RecipeID: recipeID, Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.currentRecipe = &recipe
	if _, ok := s.servings[recipe.ID]; !ok {
		s.servings[recipe.ID] = s.servingsLocked(recipe.ID)
	}
	s.mu.Unlock()

	s.record(fresco.Event{Action: "fetch_recipe", RecipeID: recipeID})
}

// FetchIngredients looks up the given ingredient ids that are not cached yet.
// Lookups run concurrently and commit together; if any fails, none are cached.
func (s *Store) FetchIngredients(ctx context.Context, ids []string) {
	s.mu.Lock()
	missing := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, cached := s.ingredients[id]; cached || seen[id] || id == "" {
			continue
		}
		seen[id] = true
		missing = append(missing, id)
	}
	s.mu.Unlock()

	if len(missing) == 0 {
		return
	}

	fetched, err := FetchAll(ctx, missing, func(ctx context.Context, id string) (fresco.Ingredient, error) {
		ing, err := s.api.GetIngredient(ctx, id)
		if err != nil {
			return fresco.Ingredient{}, err
		}
		return fresco.Ingredient{ID: id, Name: ing.Name, ImagePath: ing.ImagePath}, nil
	})
	if err != nil {
		slog.Error("STORE: Error fetching ingredients", "count", len(missing), "error", err)
		s.record(fresco.Event{Action: "fetch_ingredients", Error: err.Error()})
		return
	}

	s.mu.Lock()
	for id, ing := range fetched {
		s.ingredients[id] = ing
	}
	s.mu.Unlock()

	s.record(fresco.Event{Action: "fetch_ingredients", Count: len(fetched)})
}

// FetchSelectedIngredients makes sure every ingredient on the shopping list has a display name.
func (s *Store) FetchSelectedIngredients(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0)
	for _, r := range s.selected {
		ids = append(ids, r.IngredientIDs()...)
	}
	s.mu.Unlock()

	s.FetchIngredients(ctx, ids)
}
