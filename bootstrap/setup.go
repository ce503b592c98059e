package bootstrap

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	openaisdk "github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/va6996/mcpworkshop/agents"
	"github.com/va6996/mcpworkshop/bootstrap/openai"
	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/log"
	"github.com/va6996/mcpworkshop/mcpclient"
	"github.com/va6996/mcpworkshop/memory"
)

// App holds the initialized components of the application
type App struct {
	Agent  *agents.Agent
	Genkit *genkit.Genkit
	Model  ai.Model
	Memory memory.Store
}

// Setup initializes the application components based on the configuration.
// The agent is created but not initialized, so no MCP server is contacted yet.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	return SetupProfile(ctx, cfg, cfg.Agent.Profile, cfg.Agent.MCPURL)
}

// SetupProfile is Setup for an explicit agent profile and MCP endpoint
func SetupProfile(ctx context.Context, cfg *config.Config, profileName, mcpURL string) (*App, error) {
	profile, err := agents.LookupProfile(profileName)
	if err != nil {
		return nil, err
	}

	gk, model, err := SetupModel(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}

	store, err := memory.New(ctx, cfg.Memory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory: %w", err)
	}

	connect := func(ctx context.Context) (agents.ToolCaller, error) {
		return mcpclient.Connect(ctx, mcpclient.ServerConfig{
			Name:      profile.Name,
			Transport: mcpclient.TransportHTTP,
			URL:       mcpURL,
		})
	}

	log.Infof(ctx, "Agent profile %s will use MCP server %s", profile.Name, mcpURL)
	agent := agents.NewAgent(gk, model, profile, connect, store, agents.Options{
		MaxTurns: cfg.Agent.MaxTurns,
		Config:   GenerationConfig(cfg.AI),
	})

	return &App{
		Agent:  agent,
		Genkit: gk,
		Model:  model,
		Memory: store,
	}, nil
}

// SetupModel initializes genkit with the configured AI plugin
func SetupModel(ctx context.Context, cfg config.AIConfig) (*genkit.Genkit, ai.Model, error) {
	var gk *genkit.Genkit
	var model ai.Model

	switch cfg.Plugin {
	case "ollama":
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.Ollama.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		model = ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
	case "openai":
		log.Infof(ctx, "Using OpenAI compatible Plugin (Model: %s, URL: %s)...", cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		if cfg.OpenAI.APIKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY must be set (or set AI_PLUGIN=ollama)")
		}
		oa := &openai.OpenAI{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Models:  []string{cfg.OpenAI.Model},
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(oa))
		model = oa.Model(gk, cfg.OpenAI.Model)
	case "", "gemini":
		log.Infof(ctx, "Using Gemini Plugin (Model: %s)...", cfg.Gemini.Model)
		if cfg.Gemini.APIKey == "" {
			return nil, nil, fmt.Errorf("GOOGLE_API_KEY must be set (or set AI_PLUGIN=ollama)")
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.Gemini.APIKey,
		}))
		model = googlegenai.GoogleAIModel(gk, cfg.Gemini.Model)
	default:
		return nil, nil, fmt.Errorf("unsupported AI plugin: %s", cfg.Plugin)
	}

	if model == nil {
		return nil, nil, fmt.Errorf("model not available for plugin %s", cfg.Plugin)
	}
	return gk, model, nil
}

// GenerationConfig carries the configured temperature in the config type
// each plugin understands.
func GenerationConfig(cfg config.AIConfig) any {
	switch cfg.Plugin {
	case "ollama":
		return &ai.GenerationCommonConfig{Temperature: cfg.Temperature}
	case "openai":
		return &openaisdk.ChatCompletionNewParams{Temperature: openaisdk.Float(cfg.Temperature)}
	default:
		return &genai.GenerateContentConfig{Temperature: genai.Ptr(float32(cfg.Temperature))}
	}
}
