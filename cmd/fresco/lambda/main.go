package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fresco"
	"fresco/api"
	"fresco/shopping"
	"fresco/store"
)

// Params is the invocation event. Recipes maps recipe ids to servings and Token is the caller's id token.
type Params struct {
	Recipes map[string]int `json:"recipes"`
	UserID  string         `json:"userId,omitempty"`
	Token   string         `json:"token,omitempty"`
}

type Results struct {
	Items shopping.Lines `json:"items"`
	Text  string         `json:"text"`
}

type staticToken string

func (t staticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", fresco.ErrNotAuthenticated
	}
	return string(t), nil
}

func main() {
	var apiConfig fresco.APIConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	fn := func(ctx context.Context, params Params) (Results, error) {
		otelShutdown, err := fresco.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		ctx, span := otel.Tracer(fresco.TracerNameLambda).Start(ctx, fresco.TracerNameLambda, trace.WithAttributes(
			attribute.Int("recipes.count", len(params.Recipes)),
		))
		defer span.End()

		client, err := api.NewClient(api.ClientOpts{
			BaseURL:    apiConfig.BaseURL,
			PageSize:   apiConfig.PageSize,
			HTTPClient: &http.Client{Timeout: apiConfig.HTTPTimeout},
			Tokens:     staticToken(params.Token),
		})
		if err != nil {
			slog.Error("SETUP: Failed to create API client", "error", err)
			return Results{}, err
		}

		events := fresco.NewStdoutEventLogger()
		return shoppingList(ctx, client, events, params)
	}

	lambda.Start(fn)
}

type recipeAPI interface {
	GetRecipe(ctx context.Context, recipeID, userID string) (fresco.Recipe, error)
	GetIngredient(ctx context.Context, ingredientID string) (fresco.Ingredient, error)
}

// shoppingList fetches every requested recipe and its ingredients and returns the combined list.
// Recipes are ordered by id so the output is stable across invocations.
func shoppingList(ctx context.Context, client recipeAPI, events fresco.EventLogger, params Params) (Results, error) {
	ids := make([]string, 0, len(params.Recipes))
	for id := range params.Recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recipes, err := store.FetchAll(ctx, ids, func(ctx context.Context, id string) (fresco.Recipe, error) {
		r, err := client.GetRecipe(ctx, id, params.UserID)
		if err != nil {
			return fresco.Recipe{}, fmt.Errorf("failed to fetch recipe %s: %w", id, err)
		}
		return r, nil
	})
	if err != nil {
		slog.Error("RESULT: Failed to fetch recipes", "error", err)
		return Results{}, err
	}

	selected := make([]fresco.SelectedRecipe, 0, len(ids))
	seen := make(map[string]bool)
	ingIDs := make([]string, 0)
	for _, id := range ids {
		r := fresco.SelectedRecipe{Recipe: recipes[id], Servings: max(params.Recipes[id], 1)}
		selected = append(selected, r)
		for _, ingID := range r.IngredientIDs() {
			if !seen[ingID] {
				seen[ingID] = true
				ingIDs = append(ingIDs, ingID)
			}
		}
	}

	refs, err := store.FetchAll(ctx, ingIDs, func(ctx context.Context, id string) (fresco.Ingredient, error) {
		ing, err := client.GetIngredient(ctx, id)
		if err != nil {
			return fresco.Ingredient{}, fmt.Errorf("failed to fetch ingredient %s: %w", id, err)
		}
		ing.ID = id
		return ing, nil
	})
	if err != nil {
		slog.Error("RESULT: Failed to fetch ingredients", "error", err)
		return Results{}, err
	}

	lines := shopping.Aggregate(selected, refs)
	var text bytes.Buffer
	if err := shopping.Render(&text, lines, nil); err != nil {
		return Results{}, err
	}

	if err := events.LogEvent(fresco.Event{Action: "shopping_list", Timestamp: time.Now(), Count: len(lines)}); err != nil {
		slog.Error("RESULT: Failed to log event", "error", err)
	}
	return Results{Items: lines, Text: text.String()}, nil
}
