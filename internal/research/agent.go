// Package research implements the AI research agent: a bounded
// tool-calling loop over an OpenAI-compatible chat API, where the
// tools are FCP lookups. The agent holds the FCP client as a plain
// collaborator; it has no HTTP knowledge of its own.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-fcp/internal/fcp"
)

// Defaults for the agent loop.
const (
	DefaultModel    = "gpt-4o-mini"
	defaultMaxTurns = 8

	// maxParallelTools bounds concurrent FCP lookups when the model
	// requests several tool calls in one turn.
	maxParallelTools = 4
)

// ErrTurnBudget indicates the model kept requesting tools past the
// turn limit without producing an answer.
var ErrTurnBudget = errors.New("research did not converge within the turn budget")

// Completer is the chat completion surface the agent needs.
// *openai.Client implements this implicitly; tests inject mocks.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// FoodAPI is the slice of the FCP client the agent's tools use.
// *fcp.Client implements this implicitly.
type FoodAPI interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]fcp.Food, error)
	GetFood(ctx context.Context, id string) (fcp.Food, error)
	ListRecipes(ctx context.Context, tag string) ([]fcp.Recipe, error)
}

// Agent answers free-form nutrition questions by letting the model
// consult the FCP server through tool calls.
type Agent struct {
	completer Completer
	api       FoodAPI
	model     string
	maxTurns  int
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithMaxTurns sets the tool-loop turn budget.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// New creates an Agent over the given completer and FCP surface.
func New(completer Completer, api FoodAPI, opts ...Option) *Agent {
	a := &Agent{
		completer: completer,
		api:       api,
		model:     DefaultModel,
		maxTurns:  defaultMaxTurns,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

const systemPrompt = `You are a nutrition research assistant backed by the FCP food
database. Use the provided tools to ground every factual claim in FCP
data. Answer concisely in plain text for a terminal.`

// tools describes the FCP lookups exposed to the model.
var tools = []openai.Tool{
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "search_foods",
			Description: "Search the food database by free-text query.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search terms."},
					"limit": map[string]any{"type": "integer", "description": "Max results, default 5."},
				},
				"required": []string{"query"},
			},
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "get_food",
			Description: "Fetch full details for one food by ID.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "description": "Food ID from search_foods."},
				},
				"required": []string{"id"},
			},
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "list_recipes",
			Description: "List stored recipes, optionally filtered by tag.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tag": map[string]any{"type": "string", "description": "Optional tag filter, e.g. vegan."},
				},
			},
		},
	},
}

// Research answers a question, driving the tool loop until the model
// responds without tool calls or the turn budget runs out.
func (a *Agent) Research(ctx context.Context, question string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: question},
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from model")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg)
		results, err := a.runToolCalls(ctx, msg.ToolCalls)
		if err != nil {
			return "", err
		}
		messages = append(messages, results...)
	}

	return "", ErrTurnBudget
}

// runToolCalls executes one turn of tool calls in parallel, preserving
// the call order in the returned tool messages.
func (a *Agent) runToolCalls(ctx context.Context, calls []openai.ToolCall) ([]openai.ChatCompletionMessage, error) {
	results := make([]openai.ChatCompletionMessage, len(calls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelTools)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			content, err := a.callTool(ctx, call)
			if err != nil {
				return err
			}
			results[i] = openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    content,
				ToolCallID: call.ID,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// callTool dispatches a single tool call. Server-side rejections (bad
// ID, etc.) are fed back to the model as tool output so it can adapt;
// connection-level failures abort the whole research run.
func (a *Agent) callTool(ctx context.Context, call openai.ToolCall) (string, error) {
	result, err := a.dispatch(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		var connErr *fcp.ConnectionError
		if errors.As(err, &connErr) {
			return "", err
		}
		return fmt.Sprintf("error: %v", err), nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", call.Function.Name, err)
	}
	return string(encoded), nil
}

func (a *Agent) dispatch(ctx context.Context, name, arguments string) (any, error) {
	switch name {
	case "search_foods":
		var args struct {
			Query string `json:"query"`
			Limit int    `json:"limit"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return nil, fmt.Errorf("bad search_foods arguments: %w", err)
		}
		if args.Limit <= 0 {
			args.Limit = 5
		}
		return a.api.SearchFoods(ctx, args.Query, args.Limit)

	case "get_food":
		var args struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return nil, fmt.Errorf("bad get_food arguments: %w", err)
		}
		return a.api.GetFood(ctx, args.ID)

	case "list_recipes":
		var args struct {
			Tag string `json:"tag"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return nil, fmt.Errorf("bad list_recipes arguments: %w", err)
		}
		return a.api.ListRecipes(ctx, args.Tag)

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}
