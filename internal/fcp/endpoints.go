package fcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Typed records returned by the FCP API.

// Food is a single entry from the food intelligence database.
type Food struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	ServingSize string  `json:"serving_size,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein_g"`
	Carbs       float64 `json:"carbs_g"`
	Fat         float64 `json:"fat_g"`
}

// PantryItem is a stocked ingredient in the user's pantry.
type PantryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	ExpiresOn string  `json:"expires_on,omitempty"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// Recipe is a stored recipe with per-serving nutrition.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Tags         []string     `json:"tags,omitempty"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	PerServing   Nutrition    `json:"nutrition_per_serving"`
}

// Nutrition is a macro breakdown.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

// LabelAnalysis is the server's reading of a nutrition label.
type LabelAnalysis struct {
	ProductName string    `json:"product_name,omitempty"`
	PerServing  Nutrition `json:"nutrition_per_serving"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// MealEntry is a logged meal.
type MealEntry struct {
	ID       string    `json:"id,omitempty"`
	FoodID   string    `json:"food_id,omitempty"`
	Name     string    `json:"name"`
	Meal     string    `json:"meal"` // breakfast, lunch, dinner, snack
	Date     string    `json:"date"` // YYYY-MM-DD
	Servings float64   `json:"servings"`
	Totals   Nutrition `json:"totals,omitzero"`
}

// DailySummary aggregates a day of logged meals.
type DailySummary struct {
	Date    string      `json:"date"`
	Totals  Nutrition   `json:"totals"`
	Entries []MealEntry `json:"entries,omitempty"`
}

// do issues a request and decodes the JSON response into T. Endpoint
// wrappers share it so every method has identical error behavior.
func do[T any](ctx context.Context, c *Client, method, path string, body any, query url.Values) (T, error) {
	var out T
	raw, err := c.Request(ctx, method, path, body, query)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return out, nil
}

// Health performs a zero-argument health check, returning the parsed
// JSON body verbatim.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, "/health/", nil, nil)
}

// SearchFoods queries the food database. limit <= 0 uses the server
// default.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]Food, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return do[[]Food](ctx, c, http.MethodGet, "/foods/search", nil, params)
}

// GetFood fetches a single food by ID.
func (c *Client) GetFood(ctx context.Context, id string) (Food, error) {
	return do[Food](ctx, c, http.MethodGet, "/foods/"+url.PathEscape(id), nil, nil)
}

// ListPantry returns the user's pantry contents.
func (c *Client) ListPantry(ctx context.Context) ([]PantryItem, error) {
	return do[[]PantryItem](ctx, c, http.MethodGet, "/pantry/", nil, nil)
}

// AddPantryItem stocks an item, returning the stored record.
func (c *Client) AddPantryItem(ctx context.Context, item PantryItem) (PantryItem, error) {
	return do[PantryItem](ctx, c, http.MethodPost, "/pantry/", item, nil)
}

// RemovePantryItem removes an item by ID.
func (c *Client) RemovePantryItem(ctx context.Context, id string) error {
	_, err := c.Request(ctx, http.MethodDelete, "/pantry/"+url.PathEscape(id), nil, nil)
	return err
}

// ListRecipes returns recipes, optionally filtered by tag.
func (c *Client) ListRecipes(ctx context.Context, tag string) ([]Recipe, error) {
	var params url.Values
	if tag != "" {
		params = url.Values{"tag": {tag}}
	}
	return do[[]Recipe](ctx, c, http.MethodGet, "/recipes/", nil, params)
}

// GetRecipe fetches a single recipe by ID.
func (c *Client) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	return do[Recipe](ctx, c, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, nil)
}

// AnalyzeLabel submits nutrition label text for analysis.
func (c *Client) AnalyzeLabel(ctx context.Context, text string) (LabelAnalysis, error) {
	body := map[string]string{"text": text}
	return do[LabelAnalysis](ctx, c, http.MethodPost, "/labels/analyze", body, nil)
}

// LogMeal records a meal entry, returning the stored record with
// server-computed totals.
func (c *Client) LogMeal(ctx context.Context, entry MealEntry) (MealEntry, error) {
	return do[MealEntry](ctx, c, http.MethodPost, "/meals/", entry, nil)
}

// ListMeals returns the meals logged on a date (YYYY-MM-DD).
func (c *Client) ListMeals(ctx context.Context, date string) ([]MealEntry, error) {
	return do[[]MealEntry](ctx, c, http.MethodGet, "/meals/", nil, url.Values{"date": {date}})
}

// DailySummary returns the aggregated nutrition for a date.
func (c *Client) DailySummary(ctx context.Context, date string) (DailySummary, error) {
	return do[DailySummary](ctx, c, http.MethodGet, "/meals/summary", nil, url.Values{"date": {date}})
}
