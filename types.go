package fresco

import (
	"net/http"
	"slices"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Macros is the per-serving macro breakdown of a recipe, in grams.
type Macros struct {
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// IngredientAmount is one ingredient line of a recipe.
type IngredientAmount struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Step struct {
	Index            int    `json:"index"`
	InstructionsHTML string `json:"instructionsHTML"`
}

// Recipe mirrors the recipe document served by the fresco API.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	ImagePath   string             `json:"imagePath,omitempty"`
	WebsiteURL  string             `json:"websiteUrl,omitempty"`
	TotalTime   string             `json:"totalTime,omitempty"`
	Macros      Macros             `json:"macros"`
	Ingredients []IngredientAmount `json:"ingredients"`
	Steps       []Step             `json:"steps,omitempty"`
	IsFavourite bool               `json:"isFavourite,omitempty"`
}

// IngredientIDs returns the distinct ingredient ids of the recipe in list order.
func (r Recipe) IngredientIDs() []string {
	seen := make(map[string]bool, len(r.Ingredients))
	ids := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if seen[ing.ID] {
			continue
		}
		seen[ing.ID] = true
		ids = append(ids, ing.ID)
	}
	return ids
}

// Clone returns a copy of r that shares no slices with it.
func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Steps = slices.Clone(r.Steps)
	return r
}

// Ingredient is the display reference for an ingredient id.
type Ingredient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath,omitempty"`
}

// SelectedRecipe is a recipe in the shopping cart together with its servings multiplier.
type SelectedRecipe struct {
	Recipe
	Servings int `json:"servings"`
}

// Cart is the persisted shape of a user's shopping cart.
type Cart struct {
	Recipes            map[string]int `json:"recipes"`
	ShoppedIngredients []string       `json:"shoppedIngredients"`
}

// RecipePage is one page of a paginated recipe listing.
type RecipePage struct {
	Recipes         []Recipe `json:"recipes"`
	LastEvaluatedID string   `json:"lastEvaluatedId,omitempty"`
}

// FavouritesPage is one page of a user's favourite recipes.
type FavouritesPage struct {
	Recipes         []Recipe `json:"recipes"`
	LastEvaluatedID string   `json:"lastEvaluatedId,omitempty"`
}

// User is the signed-in identity as read from the identity provider's id token.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}
