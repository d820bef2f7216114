package cli

import (
	"context"
	"encoding/json"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-fcp/internal/config"
	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/research"
)

// ---------------------------------------------------------------------------
// Mock SettingsLoader
// ---------------------------------------------------------------------------

type mockSettingsLoader struct {
	LoadFunc func() (config.Settings, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockSettingsLoader) Load() (config.Settings, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.DefaultSettings(), nil
}

func (m *mockSettingsLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock FCPClient
// ---------------------------------------------------------------------------

type mockClient struct {
	HealthFunc           func(ctx context.Context) (json.RawMessage, error)
	SearchFoodsFunc      func(ctx context.Context, query string, limit int) ([]fcp.Food, error)
	GetFoodFunc          func(ctx context.Context, id string) (fcp.Food, error)
	ListPantryFunc       func(ctx context.Context) ([]fcp.PantryItem, error)
	AddPantryItemFunc    func(ctx context.Context, item fcp.PantryItem) (fcp.PantryItem, error)
	RemovePantryItemFunc func(ctx context.Context, id string) error
	ListRecipesFunc      func(ctx context.Context, tag string) ([]fcp.Recipe, error)
	GetRecipeFunc        func(ctx context.Context, id string) (fcp.Recipe, error)
	AnalyzeLabelFunc     func(ctx context.Context, text string) (fcp.LabelAnalysis, error)
	LogMealFunc          func(ctx context.Context, entry fcp.MealEntry) (fcp.MealEntry, error)
	ListMealsFunc        func(ctx context.Context, date string) ([]fcp.MealEntry, error)
	DailySummaryFunc     func(ctx context.Context, date string) (fcp.DailySummary, error)

	mu         sync.Mutex
	closeCalls int
}

func (m *mockClient) Health(ctx context.Context) (json.RawMessage, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return json.RawMessage(`{"status":"ok"}`), nil
}

func (m *mockClient) SearchFoods(ctx context.Context, query string, limit int) ([]fcp.Food, error) {
	if m.SearchFoodsFunc != nil {
		return m.SearchFoodsFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockClient) GetFood(ctx context.Context, id string) (fcp.Food, error) {
	if m.GetFoodFunc != nil {
		return m.GetFoodFunc(ctx, id)
	}
	return fcp.Food{}, nil
}

func (m *mockClient) ListPantry(ctx context.Context) ([]fcp.PantryItem, error) {
	if m.ListPantryFunc != nil {
		return m.ListPantryFunc(ctx)
	}
	return nil, nil
}

func (m *mockClient) AddPantryItem(ctx context.Context, item fcp.PantryItem) (fcp.PantryItem, error) {
	if m.AddPantryItemFunc != nil {
		return m.AddPantryItemFunc(ctx, item)
	}
	return item, nil
}

func (m *mockClient) RemovePantryItem(ctx context.Context, id string) error {
	if m.RemovePantryItemFunc != nil {
		return m.RemovePantryItemFunc(ctx, id)
	}
	return nil
}

func (m *mockClient) ListRecipes(ctx context.Context, tag string) ([]fcp.Recipe, error) {
	if m.ListRecipesFunc != nil {
		return m.ListRecipesFunc(ctx, tag)
	}
	return nil, nil
}

func (m *mockClient) GetRecipe(ctx context.Context, id string) (fcp.Recipe, error) {
	if m.GetRecipeFunc != nil {
		return m.GetRecipeFunc(ctx, id)
	}
	return fcp.Recipe{}, nil
}

func (m *mockClient) AnalyzeLabel(ctx context.Context, text string) (fcp.LabelAnalysis, error) {
	if m.AnalyzeLabelFunc != nil {
		return m.AnalyzeLabelFunc(ctx, text)
	}
	return fcp.LabelAnalysis{}, nil
}

func (m *mockClient) LogMeal(ctx context.Context, entry fcp.MealEntry) (fcp.MealEntry, error) {
	if m.LogMealFunc != nil {
		return m.LogMealFunc(ctx, entry)
	}
	return entry, nil
}

func (m *mockClient) ListMeals(ctx context.Context, date string) ([]fcp.MealEntry, error) {
	if m.ListMealsFunc != nil {
		return m.ListMealsFunc(ctx, date)
	}
	return nil, nil
}

func (m *mockClient) DailySummary(ctx context.Context, date string) (fcp.DailySummary, error) {
	if m.DailySummaryFunc != nil {
		return m.DailySummaryFunc(ctx, date)
	}
	return fcp.DailySummary{}, nil
}

func (m *mockClient) Close() {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
}

func (m *mockClient) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// Compile-time check that mockClient implements FCPClient.
var _ FCPClient = (*mockClient)(nil)

// ---------------------------------------------------------------------------
// Mock Completer for the research command
// ---------------------------------------------------------------------------

type mockCompleter struct {
	CreateFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (m *mockCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "mock answer"}},
		},
	}, nil
}

// Compile-time check that mockCompleter implements research.Completer.
var _ research.Completer = (*mockCompleter)(nil)
