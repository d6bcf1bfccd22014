package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"fresco"
)

// FavouriteError is returned by both AddFavourite and RemoveFavourite. It unwraps to the cause:
// fresco.ErrNotAuthenticated, an *api.StatusError or a transport error.
type FavouriteError struct {
	Op       string // "add" or "remove"
	RecipeID string
	Err      error
}

func (e *FavouriteError) Error() string {
	return fmt.Sprintf("failed to %s favourite %s: %v", e.Op, e.RecipeID, e.Err)
}

func (e *FavouriteError) Unwrap() error { return e.Err }

func (s *Store) AddFavourite(ctx context.Context, recipeID string) error {
	return s.setFavourite(ctx, recipeID, true)
}

func (s *Store) RemoveFavourite(ctx context.Context, recipeID string) error {
	return s.setFavourite(ctx, recipeID, false)
}

func (s *Store) setFavourite(ctx context.Context, recipeID string, favourite bool) error {
	op, action := "remove", "remove_favourite"
	if favourite {
		op, action = "add", "add_favourite"
	}

	fail := func(err error) error {
		ferr := &FavouriteError{Op: op, RecipeID: recipeID, Err: err}
		slog.Error("STORE: Favourite update failed", "op", op, "recipe_id", recipeID, "error", err)
		s.record(fresco.Event{Action: action, RecipeID: recipeID, Error: err.Error()})
		return ferr
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return fail(err)
	}

	if favourite {
		err = s.api.AddFavourite(ctx, recipeID, user.ID)
	} else {
		err = s.api.RemoveFavourite(ctx, recipeID, user.ID)
	}
	if err != nil {
		return fail(err)
	}

	s.mu.Lock()
	if s.currentRecipe != nil && s.currentRecipe.ID == recipeID {
		s.currentRecipe.IsFavourite = favourite
	}
	idx := slices.IndexFunc(s.favourites, func(r fresco.Recipe) bool { return r.ID == recipeID })
	switch {
	case favourite && idx < 0:
		if r, ok := s.knownRecipeLocked(recipeID); ok {
			r.IsFavourite = true
			s.favourites = append(s.favourites, r)
		}
	case !favourite && idx >= 0:
		s.favourites = slices.Delete(slices.Clone(s.favourites), idx, idx+1)
	}
	s.mu.Unlock()

	s.record(fresco.Event{Action: action, RecipeID: recipeID})
	return nil
}

// FetchFavourites loads a page of the signed-in user's favourites. An empty cursor replaces the
// list; otherwise the page is appended. Failures are logged and leave the list unchanged.
func (s *Store) FetchFavourites(ctx context.Context, lastEvaluatedID string) {
	user, err := s.currentUser(ctx)
	if err != nil {
		slog.Error("STORE: Failed to fetch favourites", "error", err)
		s.record(fresco.Event{Action: "fetch_favourites", Error: err.Error()})
		return
	}

	page, err := s.api.ListFavourites(ctx, user.ID, lastEvaluatedID)
	if err != nil {
		slog.Error("STORE: Failed to fetch favourites", "user_id", user.ID, "error", err)
		s.record(fresco.Event{Action: "fetch_favourites", Error: err.Error()})
		return
	}

	s.mu.Lock()
	if lastEvaluatedID == "" {
		s.favourites = slices.Clone(page.Recipes)
	} else {
		s.favourites = append(s.favourites, page.Recipes...)
	}
	s.favouritesLastEvaluatedID = page.LastEvaluatedID
	s.mu.Unlock()

	s.record(fresco.Event{Action: "fetch_favourites", Count: len(page.Recipes)})
}

func (s *Store) knownRecipeLocked(recipeID string) (fresco.Recipe, bool) {
	if s.currentRecipe != nil && s.currentRecipe.ID == recipeID {
		return *s.currentRecipe, true
	}
	for _, r := range s.recipes {
		if r.ID == recipeID {
			return r, true
		}
	}
	if i := s.indexLocked(recipeID); i >= 0 {
		return s.selected[i].Recipe, true
	}
	return fresco.Recipe{}, false
}
