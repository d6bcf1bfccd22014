package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"fresco"
	"fresco/shopping"
)

// API is the subset of the fresco API the store drives.
type API interface {
	ListRecipes(ctx context.Context, lastEvaluatedID string) (fresco.RecipePage, error)
	SearchRecipes(ctx context.Context, term string) (fresco.RecipePage, error)
	GetRecipe(ctx context.Context, recipeID, userID string) (fresco.Recipe, error)
	GetIngredient(ctx context.Context, ingredientID string) (fresco.Ingredient, error)
	AddFavourite(ctx context.Context, recipeID, userID string) error
	RemoveFavourite(ctx context.Context, recipeID, userID string) error
	ListFavourites(ctx context.Context, userID, lastEvaluatedID string) (fresco.FavouritesPage, error)
	GetCart(ctx context.Context, userID string) (fresco.Cart, error)
	UpdateCart(ctx context.Context, userID string, cart fresco.Cart) error
}

var errCartNotRestored = errors.New("remote cart was not restored")

// Users resolves the signed-in user. A nil user means nobody is signed in.
type Users interface {
	CurrentUser(ctx context.Context) (*fresco.User, error)
}

// Store is the centralized application state. Mutations are serialized by a single mutex and never
// hold it across a network call, so results commit in the order they resolve.
type Store struct {
	api    API
	users  Users
	events fresco.EventLogger
	now    func() time.Time

	mu                        sync.Mutex
	user                      *fresco.User
	recipes                   []fresco.Recipe
	lastEvaluatedID           string
	currentRecipe             *fresco.Recipe
	ingredients               map[string]fresco.Ingredient
	selected                  []fresco.SelectedRecipe
	favourites                []fresco.Recipe
	favouritesLastEvaluatedID string
	shopped                   []string
	servings                  map[string]int
	cartRestored              bool
	cartStale                 bool
}

func New(api API, users Users, events fresco.EventLogger) *Store {
	if events == nil {
		events = fresco.NewNoOpEventLogger()
	}
	return &Store{
		api:         api,
		users:       users,
		events:      events,
		now:         time.Now,
		recipes:     make([]fresco.Recipe, 0),
		ingredients: make(map[string]fresco.Ingredient),
		selected:    make([]fresco.SelectedRecipe, 0),
		favourites:  make([]fresco.Recipe, 0),
		shopped:     make([]string, 0),
		servings:    make(map[string]int),
	}
}

// State is a point-in-time copy of the store, for display and debugging.
type State struct {
	User                      *fresco.User                 `json:"user,omitempty"`
	Recipes                   []fresco.Recipe              `json:"recipes"`
	LastEvaluatedID           string                       `json:"lastEvaluatedId,omitempty"`
	CurrentRecipe             *fresco.Recipe               `json:"currentRecipe,omitempty"`
	Ingredients               map[string]fresco.Ingredient `json:"ingredients"`
	SelectedRecipes           []fresco.SelectedRecipe      `json:"selectedRecipes"`
	Favourites                []fresco.Recipe              `json:"favourites"`
	FavouritesLastEvaluatedID string                       `json:"favouritesLastEvaluatedId,omitempty"`
	ShoppedIngredients        []string                     `json:"shoppedIngredients"`
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Recipes:                   cloneRecipes(s.recipes),
		LastEvaluatedID:           s.lastEvaluatedID,
		Ingredients:               make(map[string]fresco.Ingredient, len(s.ingredients)),
		SelectedRecipes:           cloneSelected(s.selected),
		Favourites:                cloneRecipes(s.favourites),
		FavouritesLastEvaluatedID: s.favouritesLastEvaluatedID,
		ShoppedIngredients:        slices.Clone(s.shopped),
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	if s.currentRecipe != nil {
		r := s.currentRecipe.Clone()
		st.CurrentRecipe = &r
	}
	for k, v := range s.ingredients {
		st.Ingredients[k] = v
	}
	return st
}

func (s *Store) Recipes() []fresco.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.recipes)
}

// LastEvaluatedID is the cursor for the next recipe page; empty when there are no more pages.
func (s *Store) LastEvaluatedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEvaluatedID
}

func (s *Store) CurrentRecipe() *fresco.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentRecipe == nil {
		return nil
	}
	r := s.currentRecipe.Clone()
	return &r
}

// Ingredient returns the cached ingredient reference for id.
func (s *Store) Ingredient(id string) (fresco.Ingredient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.ingredients[id]
	return ing, ok
}

func (s *Store) SelectedRecipes() []fresco.SelectedRecipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSelected(s.selected)
}

func (s *Store) Favourites() []fresco.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.favourites)
}

func (s *Store) FavouritesLastEvaluatedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favouritesLastEvaluatedID
}

// ShoppingList aggregates the ingredients of every selected recipe.
func (s *Store) ShoppingList() shopping.Lines {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shopping.Aggregate(s.selected, s.ingredients)
}

// Shopped returns the set of ingredient ids checked off the shopping list.
func (s *Store) Shopped() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.shopped))
	for _, id := range s.shopped {
		out[id] = true
	}
	return out
}

func cloneRecipes(in []fresco.Recipe) []fresco.Recipe {
	if in == nil {
		return nil
	}
	out := make([]fresco.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func cloneSelected(in []fresco.SelectedRecipe) []fresco.SelectedRecipe {
	if in == nil {
		return nil
	}
	out := make([]fresco.SelectedRecipe, len(in))
	for i, r := range in {
		out[i] = fresco.SelectedRecipe{Recipe: r.Clone(), Servings: r.Servings}
	}
	return out
}

// currentUser resolves the signed-in user and caches it on the store.
func (s *Store) currentUser(ctx context.Context) (*fresco.User, error) {
	if s.users == nil {
		return nil, fresco.ErrNotAuthenticated
	}
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fresco.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// record logs an event using the configured event logger, handling errors gracefully
func (s *Store) record(event fresco.Event) {
	event.Timestamp = s.now()
	if err := s.events.LogEvent(event); err != nil {
		slog.Error("STORE: Failed to log event", "error", err, "action", event.Action)
	}
}
