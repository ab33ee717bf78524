package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"code-summarizer/internal/config"
	"code-summarizer/internal/llm"
	"code-summarizer/internal/logger"
	"code-summarizer/internal/store"
)

// Overrides carries CLI flag values that take precedence over the
// environment. Empty fields keep the env/default value.
type Overrides struct {
	Provider string
	Endpoint string
	Model    string
	DBURL    string
}

// Deps bundles the runtime dependencies of a summarizer run.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	LLM    llm.Client
	Store  store.Store
}

// Build loads env, config, and shared components.
func Build(ov Overrides) (Deps, error) {
	// .env is optional for a CLI invocation.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return Deps{}, err
	}

	if ov.Provider != "" {
		cfg.LLMProvider = ov.Provider
	}
	if ov.Endpoint != "" {
		cfg.Endpoint = ov.Endpoint
	}
	if ov.Model != "" {
		cfg.Model = ov.Model
	}
	if ov.DBURL != "" {
		cfg.StoreProvider = "postgres"
		cfg.DBURL = ov.DBURL
	}
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}

	return Deps{
		Config: cfg,
		Log:    log,
		LLM:    llmClient,
		Store:  st,
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "ollama":
		client, err := llm.NewOllamaClient(cfg.Endpoint, cfg.Model, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("using Ollama client", "endpoint", cfg.Endpoint, "model", cfg.Model)
		return client, nil
	case "openai":
		// For local OpenAI-compatible servers the endpoint must include
		// the /v1 prefix, e.g. http://localhost:11434/v1.
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, cfg.Endpoint, openai.ChatModel(cfg.Model), cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("using OpenAI-compatible client", "endpoint", cfg.Endpoint, "model", cfg.Model)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: ollama, openai)", cfg.LLMProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "none":
		return store.NewNoop(), nil
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres run history")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: none, postgres)", cfg.StoreProvider)
	}
}
