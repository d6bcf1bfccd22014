package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fresco"
	"fresco/shopping"
)

// fakeAPI is an in-memory stand-in for the fresco API.
type fakeAPI struct {
	mu sync.Mutex

	pages       map[string]fresco.RecipePage
	search      map[string]fresco.RecipePage
	recipes     map[string]fresco.Recipe
	ingredients map[string]fresco.Ingredient
	favPages    map[string]fresco.FavouritesPage
	cart        fresco.Cart

	err         error
	ingErr      map[string]error
	favErr      error
	cartErr     error
	ingCalls    []string
	favCalls    []string
	cartUpdates []fresco.Cart
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pages:       map[string]fresco.RecipePage{},
		search:      map[string]fresco.RecipePage{},
		recipes:     map[string]fresco.Recipe{},
		ingredients: map[string]fresco.Ingredient{},
		favPages:    map[string]fresco.FavouritesPage{},
		ingErr:      map[string]error{},
	}
}

func (f *fakeAPI) ListRecipes(ctx context.Context, lastEvaluatedID string) (fresco.RecipePage, error) {
	if f.err != nil {
		return fresco.RecipePage{}, f.err
	}
	return f.pages[lastEvaluatedID], nil
}

func (f *fakeAPI) SearchRecipes(ctx context.Context, term string) (fresco.RecipePage, error) {
	if f.err != nil {
		return fresco.RecipePage{}, f.err
	}
	return f.search[term], nil
}

func (f *fakeAPI) GetRecipe(ctx context.Context, recipeID, userID string) (fresco.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return fresco.Recipe{}, f.err
	}
	r, ok := f.recipes[recipeID]
	if !ok {
		return fresco.Recipe{}, errors.New("404 Not Found")
	}
	return r, nil
}

func (f *fakeAPI) GetIngredient(ctx context.Context, ingredientID string) (fresco.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingCalls = append(f.ingCalls, ingredientID)
	if err := f.ingErr[ingredientID]; err != nil {
		return fresco.Ingredient{}, err
	}
	return f.ingredients[ingredientID], nil
}

func (f *fakeAPI) AddFavourite(ctx context.Context, recipeID, userID string) error {
	f.favCalls = append(f.favCalls, "add:"+recipeID+":"+userID)
	return f.favErr
}

func (f *fakeAPI) RemoveFavourite(ctx context.Context, recipeID, userID string) error {
	f.favCalls = append(f.favCalls, "remove:"+recipeID+":"+userID)
	return f.favErr
}

func (f *fakeAPI) ListFavourites(ctx context.Context, userID, lastEvaluatedID string) (fresco.FavouritesPage, error) {
	if f.err != nil {
		return fresco.FavouritesPage{}, f.err
	}
	return f.favPages[lastEvaluatedID], nil
}

func (f *fakeAPI) GetCart(ctx context.Context, userID string) (fresco.Cart, error) {
	if f.cartErr != nil {
		return fresco.Cart{}, f.cartErr
	}
	return f.cart, nil
}

func (f *fakeAPI) UpdateCart(ctx context.Context, userID string, cart fresco.Cart) error {
	f.cartUpdates = append(f.cartUpdates, cart)
	return f.cartErr
}

type fakeUsers struct{ user *fresco.User }

func (f fakeUsers) CurrentUser(ctx context.Context) (*fresco.User, error) { return f.user, nil }

var signedIn = fakeUsers{user: &fresco.User{ID: "user-1", Username: "jane"}}

type recordingEvents struct{ events []fresco.Event }

func (r *recordingEvents) LogEvent(e fresco.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) actions() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

func recipe(id string, ings ...fresco.IngredientAmount) fresco.Recipe {
	return fresco.Recipe{ID: id, Name: "Recipe " + id, Ingredients: ings}
}

func TestFetchRecipes(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.pages[""] = fresco.RecipePage{Recipes: []fresco.Recipe{recipe("1"), recipe("2")}, LastEvaluatedID: "2"}
	api.pages["2"] = fresco.RecipePage{Recipes: []fresco.Recipe{recipe("3")}}

	s := New(api, nil, nil)

	s.FetchRecipes(ctx, "")
	assert.Len(t, s.Recipes(), 2)
	assert.Equal(t, "2", s.LastEvaluatedID())

	s.FetchRecipes(ctx, s.LastEvaluatedID())
	got := s.Recipes()
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[2].ID)
	assert.Empty(t, s.LastEvaluatedID(), "last page has no cursor")

	t.Run("failure leaves state unchanged", func(t *testing.T) {
		api.err = errors.New("network error")
		defer func() { api.err = nil }()

		s.FetchRecipes(ctx, "")
		assert.Len(t, s.Recipes(), 3)
	})
}

func TestSearchRecipes(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.pages[""] = fresco.RecipePage{Recipes: []fresco.Recipe{recipe("1"), recipe("2")}, LastEvaluatedID: "2"}
	api.search["soup"] = fresco.RecipePage{Recipes: []fresco.Recipe{recipe("9")}}

	s := New(api, nil, nil)
	s.FetchRecipes(ctx, "")

	s.SearchRecipes(ctx, "soup")
	require.Len(t, s.Recipes(), 1, "search replaces rather than appends")
	assert.Equal(t, "9", s.Recipes()[0].ID)
	assert.Empty(t, s.LastEvaluatedID())

	s.SearchRecipes(ctx, "")
	assert.Len(t, s.Recipes(), 2)

	api.err = errors.New("network error")
	s.SearchRecipes(ctx, "soup")
	assert.Len(t, s.Recipes(), 2)
}

func TestFetchRecipe(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.recipes["1"] = fresco.Recipe{ID: "1", Name: "Soup", IsFavourite: true}

	t.Run("signed in", func(t *testing.T) {
		s := New(api, signedIn, nil)
		s.FetchRecipe(ctx, "1")
		require.NotNil(t, s.CurrentRecipe())
		assert.True(t, s.CurrentRecipe().IsFavourite)
		assert.Equal(t, 1, s.Servings("1"))
	})

	t.Run("signed out leaves state unchanged", func(t *testing.T) {
		events := &recordingEvents{}
		s := New(api, fakeUsers{}, events)
		s.FetchRecipe(ctx, "1")
		assert.Nil(t, s.CurrentRecipe())
		require.Len(t, events.events, 1)
		assert.Equal(t, "User not authenticated", events.events[0].Error)
	})

	t.Run("api failure leaves state unchanged", func(t *testing.T) {
		s := New(api, signedIn, nil)
		s.FetchRecipe(ctx, "missing")
		assert.Nil(t, s.CurrentRecipe())
	})
}

func TestFetchIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches uncached ids once", func(t *testing.T) {
		api := newFakeAPI()
		api.ingredients["1"] = fresco.Ingredient{Name: "Flour", ImagePath: "flour.jpg"}
		api.ingredients["2"] = fresco.Ingredient{Name: "Milk"}
		s := New(api, nil, nil)

		s.FetchIngredients(ctx, []string{"1", "2", "1"})
		ing, ok := s.Ingredient("1")
		require.True(t, ok)
		assert.Equal(t, fresco.Ingredient{ID: "1", Name: "Flour", ImagePath: "flour.jpg"}, ing)
		assert.ElementsMatch(t, []string{"1", "2"}, api.ingCalls)

		s.FetchIngredients(ctx, []string{"1", "2"})
		assert.Len(t, api.ingCalls, 2, "cached ingredients are not fetched again")
	})

	t.Run("any failure commits nothing", func(t *testing.T) {
		api := newFakeAPI()
		api.ingredients["1"] = fresco.Ingredient{Name: "Flour"}
		api.ingErr["2"] = errors.New("network error")
		s := New(api, nil, nil)

		s.FetchIngredients(ctx, []string{"1", "2"})
		_, ok := s.Ingredient("1")
		assert.False(t, ok)
	})
}

func TestAddSelectedRecipe(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := New(api, signedIn, nil)

	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 1})
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("2"), Servings: 2})
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 3})

	selected := s.SelectedRecipes()
	require.Len(t, selected, 2, "re-adding updates in place")
	assert.Equal(t, "1", selected[0].ID)
	assert.Equal(t, 3, selected[0].Servings)
	assert.Equal(t, 3, s.Servings("1"))

	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("4"), Servings: 0})
	assert.Equal(t, 1, s.Servings("4"), "servings never drop below 1")

	require.Len(t, api.cartUpdates, 4)
	assert.Equal(t, map[string]int{"1": 3, "2": 2, "4": 1}, api.cartUpdates[3].Recipes)
}

func TestToggleSelection(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := New(api, signedIn, nil)
	r := recipe("1")

	s.ToggleSelection(ctx, r, true)
	s.UpdateRecipeServings(ctx, "1", 4)
	s.ToggleSelection(ctx, r, true)

	selected := s.SelectedRecipes()
	require.Len(t, selected, 1)
	assert.Equal(t, 4, selected[0].Servings, "adding a selected recipe is a no-op")

	s.ToggleSelection(ctx, r, false)
	assert.Empty(t, s.SelectedRecipes())
	assert.False(t, s.IsSelected("1"))

	s.ToggleSelection(ctx, r, false)
	assert.Len(t, api.cartUpdates, 3, "removing an absent recipe does not persist")
}

func TestUpdateRecipeServings(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := New(api, signedIn, nil)

	s.UpdateRecipeServings(ctx, "1", 5)
	assert.Empty(t, s.SelectedRecipes(), "unselected recipes are ignored")

	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 2})
	s.UpdateRecipeServings(ctx, "1", -3)
	assert.Equal(t, 1, s.SelectedRecipes()[0].Servings)
}

func TestServingAdjuster(t *testing.T) {
	ctx := context.Background()

	t.Run("decrement floors at one", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, signedIn, nil)

		for range 5 {
			assert.Equal(t, 1, s.DecrementServings(ctx, "1"))
		}
		assert.Equal(t, 1, s.Servings("1"))
		assert.Empty(t, api.cartUpdates)
	})

	t.Run("unselected recipe changes view state only", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, signedIn, nil)

		assert.Equal(t, 2, s.IncrementServings(ctx, "1"))
		assert.Equal(t, 3, s.IncrementServings(ctx, "1"))
		assert.Equal(t, 2, s.DecrementServings(ctx, "1"))
		assert.Equal(t, 2, s.Servings("1"))
		assert.Empty(t, api.cartUpdates, "nothing to persist for unselected recipes")
	})

	t.Run("selected recipe persists and recomputes the shopping list", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, signedIn, nil)
		s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{
			Recipe:   recipe("1", fresco.IngredientAmount{ID: "flour", Amount: 100, Unit: "g"}),
			Servings: 1,
		})

		assert.Equal(t, 2, s.IncrementServings(ctx, "1"))
		assert.Equal(t, 2, s.SelectedRecipes()[0].Servings)
		assert.Equal(t, 200.0, s.ShoppingList()[0].Amount)
		assert.Equal(t, map[string]int{"1": 2}, api.cartUpdates[len(api.cartUpdates)-1].Recipes)
	})
}

func TestShoppingList(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.ingredients["1"] = fresco.Ingredient{Name: "Flour"}
	s := New(api, signedIn, nil)

	assert.True(t, s.ShoppingList().Empty())

	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{
		Recipe:   recipe("a", fresco.IngredientAmount{ID: "1", Amount: 100, Unit: "g"}, fresco.IngredientAmount{ID: "2", Amount: 1, Unit: "tbsp"}),
		Servings: 2,
	})
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{
		Recipe:   recipe("b", fresco.IngredientAmount{ID: "1", Amount: 50, Unit: "g"}),
		Servings: 1,
	})
	s.FetchSelectedIngredients(ctx)

	assert.Equal(t, shopping.Lines{
		{ID: "1", Unit: "g", Amount: 250, Name: "Flour"},
		{ID: "2", Unit: "tbsp", Amount: 2, Name: shopping.UnknownIngredient},
	}, s.ShoppingList())
}

func TestFavourites(t *testing.T) {
	ctx := context.Background()

	t.Run("add and remove update the current recipe and list", func(t *testing.T) {
		api := newFakeAPI()
		api.recipes["1"] = fresco.Recipe{ID: "1", Name: "Soup"}
		s := New(api, signedIn, nil)
		s.FetchRecipe(ctx, "1")

		require.NoError(t, s.AddFavourite(ctx, "1"))
		assert.True(t, s.CurrentRecipe().IsFavourite)
		require.Len(t, s.Favourites(), 1)
		assert.Equal(t, "Soup", s.Favourites()[0].Name)

		require.NoError(t, s.RemoveFavourite(ctx, "1"))
		assert.False(t, s.CurrentRecipe().IsFavourite)
		assert.Empty(t, s.Favourites())
		assert.Equal(t, []string{"add:1:user-1", "remove:1:user-1"}, api.favCalls)
	})

	t.Run("add and remove fail with the same error shape", func(t *testing.T) {
		api := newFakeAPI()
		api.favErr = errors.New("500 Internal Server Error")
		s := New(api, signedIn, nil)

		for _, op := range []func(context.Context, string) error{s.AddFavourite, s.RemoveFavourite} {
			err := op(ctx, "1")
			var ferr *FavouriteError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, "1", ferr.RecipeID)
			assert.ErrorIs(t, err, api.favErr)
		}
	})

	t.Run("signed out", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, fakeUsers{}, nil)

		err := s.AddFavourite(ctx, "1")
		assert.ErrorIs(t, err, fresco.ErrNotAuthenticated)
		assert.EqualError(t, err, "failed to add favourite 1: User not authenticated")
		err = s.RemoveFavourite(ctx, "1")
		assert.EqualError(t, err, "failed to remove favourite 1: User not authenticated")
		assert.Empty(t, api.favCalls)
	})
}

func TestFetchFavourites(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.favPages[""] = fresco.FavouritesPage{Recipes: []fresco.Recipe{recipe("1")}, LastEvaluatedID: "1"}
	api.favPages["1"] = fresco.FavouritesPage{Recipes: []fresco.Recipe{recipe("2")}}
	s := New(api, signedIn, nil)

	s.FetchFavourites(ctx, "")
	assert.Equal(t, "1", s.FavouritesLastEvaluatedID())
	s.FetchFavourites(ctx, "1")
	assert.Len(t, s.Favourites(), 2)
	assert.Empty(t, s.FavouritesLastEvaluatedID())

	s.FetchFavourites(ctx, "")
	assert.Len(t, s.Favourites(), 1, "first page replaces the list")

	signedOut := New(api, fakeUsers{}, nil)
	signedOut.FetchFavourites(ctx, "")
	assert.Empty(t, signedOut.Favourites())
}

func TestCart(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch restores selection ordered by id", func(t *testing.T) {
		api := newFakeAPI()
		api.recipes["b"] = recipe("b", fresco.IngredientAmount{ID: "1", Amount: 50, Unit: "g"})
		api.recipes["a"] = recipe("a", fresco.IngredientAmount{ID: "1", Amount: 100, Unit: "g"})
		api.cart = fresco.Cart{Recipes: map[string]int{"b": 1, "a": 2}, ShoppedIngredients: []string{"1"}}
		s := New(api, signedIn, nil)

		s.FetchCart(ctx)
		selected := s.SelectedRecipes()
		require.Len(t, selected, 2)
		assert.Equal(t, "a", selected[0].ID)
		assert.Equal(t, 2, selected[0].Servings)
		assert.Equal(t, map[string]bool{"1": true}, s.Shopped())
		assert.Equal(t, 250.0, s.ShoppingList()[0].Amount)
	})

	t.Run("a missing recipe keeps the current selection", func(t *testing.T) {
		api := newFakeAPI()
		api.cart = fresco.Cart{Recipes: map[string]int{"gone": 1}}
		s := New(api, signedIn, nil)
		s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("x"), Servings: 1})

		s.FetchCart(ctx)
		require.Len(t, s.SelectedRecipes(), 1)
		assert.Equal(t, "x", s.SelectedRecipes()[0].ID)
	})

	t.Run("toggle shopped persists", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, signedIn, nil)

		assert.True(t, s.ToggleShopped(ctx, "7"))
		assert.Equal(t, []string{"7"}, api.cartUpdates[0].ShoppedIngredients)
		assert.False(t, s.ToggleShopped(ctx, "7"))
		assert.Empty(t, api.cartUpdates[1].ShoppedIngredients)
	})

	t.Run("persist failures are swallowed", func(t *testing.T) {
		api := newFakeAPI()
		api.cartErr = errors.New("503 Service Unavailable")
		events := &recordingEvents{}
		s := New(api, signedIn, events)

		s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 2})
		assert.Len(t, s.SelectedRecipes(), 1, "local state is kept")
		assert.Equal(t, []string{"add_selected_recipe", "persist_cart"}, events.actions())
		assert.Equal(t, "503 Service Unavailable", events.events[1].Error)
	})

	t.Run("signed out does not call the API", func(t *testing.T) {
		api := newFakeAPI()
		s := New(api, fakeUsers{}, nil)

		s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 1})
		assert.Empty(t, api.cartUpdates)
		s.FetchCart(ctx)
		assert.Len(t, s.SelectedRecipes(), 1)
	})
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := New(api, signedIn, nil)
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("1"), Servings: 2})

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "user-1", snap.User.ID)
	snap.SelectedRecipes[0].Servings = 99
	assert.Equal(t, 2, s.SelectedRecipes()[0].Servings, "snapshot is a copy")
}

func TestFailedCartRestoreKeepsRemoteCart(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.cart = fresco.Cart{Recipes: map[string]int{"a": 2, "b": 3}}
	api.cartErr = errors.New("503 Service Unavailable")
	events := &recordingEvents{}
	s := New(api, signedIn, events)

	s.FetchCart(ctx)
	assert.False(t, s.CartRestored())

	api.cartErr = nil
	s.ToggleShopped(ctx, "flour")
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: recipe("c"), Servings: 1})
	assert.Empty(t, api.cartUpdates, "an unrestored cart is never written back")
	assert.Equal(t, errCartNotRestored.Error(), events.events[len(events.events)-1].Error)

	api.recipes["a"] = recipe("a")
	api.recipes["b"] = recipe("b")
	s.FetchCart(ctx)
	require.True(t, s.CartRestored())

	s.ToggleShopped(ctx, "flour")
	require.Len(t, api.cartUpdates, 1)
	assert.Equal(t, map[string]int{"a": 2, "b": 3}, api.cartUpdates[0].Recipes)
	assert.Equal(t, []string{"flour"}, api.cartUpdates[0].ShoppedIngredients)
}

func TestFailedCartRecipeFetchKeepsRemoteCart(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.cart = fresco.Cart{Recipes: map[string]int{"gone": 1}}
	s := New(api, signedIn, nil)

	s.FetchCart(ctx)
	assert.False(t, s.CartRestored())

	s.IncrementServings(ctx, "x")
	s.ToggleShopped(ctx, "1")
	assert.Empty(t, api.cartUpdates)
}

func TestReturnedRecipesAreCopies(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	flour := fresco.IngredientAmount{ID: "flour", Amount: 100, Unit: "g"}
	api.pages[""] = fresco.RecipePage{Recipes: []fresco.Recipe{recipe("1", flour)}}
	api.recipes["1"] = recipe("1", flour)
	s := New(api, signedIn, nil)

	s.FetchRecipes(ctx, "")
	s.FetchRecipe(ctx, "1")
	input := recipe("1", flour)
	s.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: input, Servings: 1})
	input.Ingredients[0].Amount = 1

	s.Recipes()[0].Ingredients[0].Amount = 2
	s.CurrentRecipe().Ingredients[0].Amount = 3
	s.SelectedRecipes()[0].Ingredients[0].Amount = 4
	snap := s.Snapshot()
	snap.SelectedRecipes[0].Ingredients[0].Amount = 5
	snap.Recipes[0].Ingredients[0].Amount = 6

	assert.Equal(t, 100.0, s.Recipes()[0].Ingredients[0].Amount)
	assert.Equal(t, 100.0, s.CurrentRecipe().Ingredients[0].Amount)
	assert.Equal(t, 100.0, s.SelectedRecipes()[0].Ingredients[0].Amount)
	assert.Equal(t, 100.0, s.ShoppingList()[0].Amount)
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()
	ids := make([]string, 40)
	for i := range ids {
		ids[i] = string(rune('a' + i%26)) + string(rune('0'+i/26))
	}

	t.Run("bounded concurrency", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		got, err := FetchAll(ctx, ids, func(ctx context.Context, id string) (string, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			return "v-" + id, nil
		})
		require.NoError(t, err)
		assert.Len(t, got, len(ids))
		assert.Equal(t, "v-a0", got["a0"])
		assert.LessOrEqual(t, peak.Load(), int32(MaxConcurrentFetches))
	})

	t.Run("first error discards results", func(t *testing.T) {
		boom := errors.New("network error")
		got, err := FetchAll(ctx, ids, func(ctx context.Context, id string) (int, error) {
			if id == "c1" {
				return 0, boom
			}
			return 1, nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("no ids", func(t *testing.T) {
		got, err := FetchAll(ctx, nil, func(ctx context.Context, id string) (int, error) { return 0, nil })
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
