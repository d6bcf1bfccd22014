package store

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	"fresco"
)

// Cart returns the persisted form of the current selection.
func (s *Store) Cart() fresco.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked()
}

func (s *Store) cartLocked() fresco.Cart {
	cart := fresco.Cart{
		Recipes:            make(map[string]int, len(s.selected)),
		ShoppedIngredients: slices.Clone(s.shopped),
	}
	for _, r := range s.selected {
		cart.Recipes[r.ID] = r.Servings
	}
	return cart
}

// CartRestored reports whether the last FetchCart loaded the remote cart.
func (s *Store) CartRestored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartRestored
}

// PersistCart saves the cart for the signed-in user. Failures are logged and swallowed.
// After a failed FetchCart nothing is written until a FetchCart succeeds, so the remote cart is
// never replaced by a selection that was not restored from it.
func (s *Store) PersistCart(ctx context.Context) {
	s.mu.Lock()
	stale := s.cartStale
	s.mu.Unlock()
	if stale {
		slog.Warn("STORE: Cart not persisted, remote cart was not restored")
		s.record(fresco.Event{Action: "persist_cart", Error: errCartNotRestored.Error()})
		return
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		slog.Warn("STORE: Cart not persisted", "error", err)
		s.record(fresco.Event{Action: "persist_cart", Error: err.Error()})
		return
	}

	cart := s.Cart()
	if err := s.api.UpdateCart(ctx, user.ID, cart); err != nil {
		slog.Error("STORE: Failed to persist cart", "user_id", user.ID, "error", err)
		s.record(fresco.Event{Action: "persist_cart", Error: err.Error()})
		return
	}
	s.record(fresco.Event{Action: "persist_cart", Count: len(cart.Recipes)})
}

// FetchCart restores the signed-in user's cart, fetching the detail of every recipe in it.
// Selected recipes are ordered by id. If any fetch fails the current selection is kept and
// PersistCart is held back until a later FetchCart succeeds.
func (s *Store) FetchCart(ctx context.Context) {
	fail := func(err error, args ...any) {
		slog.Error("STORE: Failed to fetch cart", append(args, "error", err)...)
		s.record(fresco.Event{Action: "fetch_cart", Error: err.Error()})
		s.mu.Lock()
		s.cartStale = true
		s.cartRestored = false
		s.mu.Unlock()
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		fail(err)
		return
	}

	cart, err := s.api.GetCart(ctx, user.ID)
	if err != nil {
		fail(err, "user_id", user.ID)
		return
	}

	ids := make([]string, 0, len(cart.Recipes))
	for id := range cart.Recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recipes, err := FetchAll(ctx, ids, func(ctx context.Context, id string) (fresco.Recipe, error) {
		return s.api.GetRecipe(ctx, id, user.ID)
	})
	if err != nil {
		fail(err, "user_id", user.ID)
		return
	}

	selected := make([]fresco.SelectedRecipe, 0, len(ids))
	for _, id := range ids {
		selected = append(selected, fresco.SelectedRecipe{Recipe: recipes[id], Servings: max(cart.Recipes[id], 1)})
	}

	s.mu.Lock()
	s.selected = selected
	for _, r := range selected {
		s.servings[r.ID] = r.Servings
	}
	s.shopped = slices.Clone(cart.ShoppedIngredients)
	if s.shopped == nil {
		s.shopped = make([]string, 0)
	}
	s.cartStale = false
	s.cartRestored = true
	s.mu.Unlock()

	slog.Info("STORE: Cart restored", "recipes", len(selected), "shopped", len(cart.ShoppedIngredients))
	s.record(fresco.Event{Action: "fetch_cart", Count: len(selected)})
}

// ToggleShopped checks an ingredient off the shopping list, or back on, and persists the cart.
func (s *Store) ToggleShopped(ctx context.Context, ingredientID string) bool {
	s.mu.Lock()
	idx := slices.Index(s.shopped, ingredientID)
	shopped := idx < 0
	if shopped {
		s.shopped = append(s.shopped, ingredientID)
	} else {
		s.shopped = slices.Delete(slices.Clone(s.shopped), idx, idx+1)
	}
	s.mu.Unlock()

	s.record(fresco.Event{Action: "toggle_shopped", IngredientID: ingredientID})
	s.PersistCart(ctx)
	return shopped
}
