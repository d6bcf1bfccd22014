package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fresco"
)

// ListRecipes fetches one page of recipes. An empty cursor requests the first page.
func (c *Client) ListRecipes(ctx context.Context, lastEvaluatedID string) (fresco.RecipePage, error) {
	q := url.Values{"pageSize": {strconv.Itoa(c.pageSize)}}
	if lastEvaluatedID != "" {
		q.Set("lastEvaluatedId", lastEvaluatedID)
	}

	var page fresco.RecipePage
	err := c.do(ctx, call{method: http.MethodGet, route: "/recipes", path: "/recipes", query: q}, &page)
	return page, err
}

// SearchRecipes fetches the first page of recipes matching term.
func (c *Client) SearchRecipes(ctx context.Context, term string) (fresco.RecipePage, error) {
	q := url.Values{
		"search":   {term},
		"pageSize": {strconv.Itoa(c.pageSize)},
	}

	var page fresco.RecipePage
	err := c.do(ctx, call{method: http.MethodGet, route: "/recipes", path: "/recipes", query: q}, &page)
	return page, err
}

// GetRecipe fetches a recipe's detail, including whether userID has it as a favourite.
func (c *Client) GetRecipe(ctx context.Context, recipeID, userID string) (fresco.Recipe, error) {
	var recipe fresco.Recipe
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/recipes/{id}",
		path:   "/recipes/" + url.PathEscape(recipeID),
		query:  url.Values{"userId": {userID}},
		auth:   true,
	}, &recipe)
	return recipe, err
}

func (c *Client) GetIngredient(ctx context.Context, ingredientID string) (fresco.Ingredient, error) {
	var ing fresco.Ingredient
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/ingredients/{id}",
		path:   "/ingredients/" + url.PathEscape(ingredientID),
	}, &ing)
	if err == nil && ing.ID == "" {
		ing.ID = ingredientID
	}
	return ing, err
}

type favouriteRequest struct {
	RecipeID string `json:"recipeId"`
	UserID   string `json:"userId"`
}

func (c *Client) AddFavourite(ctx context.Context, recipeID, userID string) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		route:  "/favourites",
		path:   "/favourites",
		body:   favouriteRequest{RecipeID: recipeID, UserID: userID},
		auth:   true,
	}, nil)
}

func (c *Client) RemoveFavourite(ctx context.Context, recipeID, userID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/favourites",
		path:   "/favourites",
		query:  url.Values{"recipeId": {recipeID}, "userId": {userID}},
		auth:   true,
	}, nil)
}

// ListFavourites fetches one page of userID's favourite recipes.
func (c *Client) ListFavourites(ctx context.Context, userID, lastEvaluatedID string) (fresco.FavouritesPage, error) {
	q := url.Values{
		"userId":   {userID},
		"pageSize": {strconv.Itoa(c.pageSize)},
	}
	if lastEvaluatedID != "" {
		q.Set("lastEvaluatedId", lastEvaluatedID)
	}

	var page fresco.FavouritesPage
	err := c.do(ctx, call{method: http.MethodGet, route: "/favourites", path: "/favourites", query: q, auth: true}, &page)
	return page, err
}

// GetCart fetches userID's persisted cart. A user without a cart gets an empty one.
func (c *Client) GetCart(ctx context.Context, userID string) (fresco.Cart, error) {
	var cart fresco.Cart
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/cart",
		path:   "/cart",
		query:  url.Values{"userId": {userID}},
		auth:   true,
	}, &cart)
	if IsNotFound(err) {
		return fresco.Cart{Recipes: map[string]int{}, ShoppedIngredients: []string{}}, nil
	}
	if cart.Recipes == nil {
		cart.Recipes = map[string]int{}
	}
	if cart.ShoppedIngredients == nil {
		cart.ShoppedIngredients = []string{}
	}
	return cart, err
}

type cartRequest struct {
	UserID string `json:"userId"`
	fresco.Cart
}

func (c *Client) UpdateCart(ctx context.Context, userID string, cart fresco.Cart) error {
	return c.do(ctx, call{
		method: http.MethodPut,
		route:  "/cart",
		path:   "/cart",
		body:   cartRequest{UserID: userID, Cart: cart},
		auth:   true,
	}, nil)
}
