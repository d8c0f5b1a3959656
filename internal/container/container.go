package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ideaforge/adapters/excel"
	"ideaforge/adapters/llm"
	"ideaforge/adapters/postgres"
	"ideaforge/internal"
	"ideaforge/internal/api"
	"ideaforge/internal/config"
	"ideaforge/internal/corpus"
	"ideaforge/internal/engine"
	"ideaforge/internal/feedback"
	"ideaforge/internal/generate"
	"ideaforge/internal/index"
	"ideaforge/internal/pareto"
	"ideaforge/internal/score"
	"ideaforge/internal/session"
	"ideaforge/internal/translate"
	"ideaforge/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories
	SessionRepo   ports.SessionRepository
	IterationRepo ports.IterationRepository

	// External services
	LLM        ports.LLMClient
	Embedder   ports.EmbeddingPort
	Classifier ports.ClassifierPort

	// Pipeline components
	Index     *index.Index
	Corpus    *corpus.Corpus
	Bridges   *translate.Builder
	Generator *generate.Generator
	Scorer    *score.BatchScorer
	Selector  *pareto.Selector
	Steerer   *feedback.Steerer
	Engine    *engine.Engine

	// Application surfaces
	Sessions *session.Manager
	Hub      *api.EventHub
	Server   *api.Server
}

// New creates the container and initializes everything that does not need
// a database connection.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Log:    internal.NewDefaultLogger(),
	}
	if err := c.initAI(); err != nil {
		return nil, fmt.Errorf("failed to initialize AI components: %w", err)
	}
	c.initPipeline()
	return c, nil
}

// initAI builds the LLM client and the port adapters around it
func (c *Container) initAI() error {
	llmConfig := llm.Config{
		Model:       c.Config.AI.ChatModel,
		APIKey:      c.Config.AI.OpenAIKey,
		Temperature: c.Config.AI.Temperature,
		MaxTokens:   c.Config.AI.MaxTokens,
		Timeout:     c.Config.AI.Timeout,
	}

	client, err := llm.NewClient(llmConfig)
	if err != nil {
		return err
	}
	c.LLM = client

	embedder, err := llm.NewEmbeddingAdapter(llm.EmbeddingConfig{
		Model:   c.Config.AI.EmbeddingModel,
		APIKey:  c.Config.AI.OpenAIKey,
		Timeout: c.Config.AI.Timeout,
	})
	if err != nil {
		return err
	}
	c.Embedder = embedder
	c.Classifier = llm.NewClassifierAdapter(llmConfig, client)
	return nil
}

// initPipeline wires the in-memory pipeline stages. The engine itself is
// created in InitWithDatabase because it persists iteration records.
func (c *Container) initPipeline() {
	llmConfig := llm.Config{
		Model:       c.Config.AI.ChatModel,
		APIKey:      c.Config.AI.OpenAIKey,
		Temperature: c.Config.AI.Temperature,
		MaxTokens:   c.Config.AI.MaxTokens,
		Timeout:     c.Config.AI.Timeout,
	}

	c.Index = index.New(c.Embedder, c.Classifier)
	c.Corpus = corpus.New()
	c.Bridges = translate.NewBuilder(llm.NewTranslatorAdapter(llmConfig, c.LLM))
	c.Generator = generate.NewGenerator(llm.NewDrafterAdapter(llmConfig, c.LLM), c.Log)

	novelty := score.NewNoveltyScorer(c.Embedder, c.Corpus)
	utility := score.NewUtilityScorer(llm.NewJudgeAdapter(llmConfig, c.LLM))
	c.Scorer = score.NewBatchScorer(novelty, utility, c.Config.Engine.ScoreConcurrency, c.Log)

	c.Selector = pareto.NewSelector(
		c.Config.Engine.MinNovelty,
		c.Config.Engine.MinUtility,
		c.Config.Engine.MaxFrontierSize,
	)
	c.Steerer = feedback.NewSteerer(llm.NewExpanderAdapter(llmConfig, c.LLM), c.Log)
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if err := postgres.NewMigrationRunner().Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.SessionRepo = postgres.NewSessionRepository(db)
	c.IterationRepo = postgres.NewIterationRepository(db)
	c.Sessions = session.NewManager(c.SessionRepo)

	c.Engine = engine.NewEngine(
		c.Index, c.Bridges, c.Generator, c.Scorer, c.Selector, c.Steerer,
		c.IterationRepo, c.Config.Engine.PerStrategy, c.Log,
	)

	c.Hub = api.NewEventHub(c.Log)
	c.Server = api.NewServer(c.SessionRepo, c.IterationRepo, c.Hub, c.Log)
	c.Engine.SetNotifier(c.Hub)

	c.Log.Info("container initialized with database connection")
	return nil
}

// SeedCorpus loads reference ideas from a spreadsheet, embeds them, and
// adds them to the novelty corpus.
func (c *Container) SeedCorpus(ctx context.Context, path string) (int, error) {
	rows, err := excel.NewSeedReader(path).ReadKnownIdeas()
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus seed file: %w", err)
	}

	for _, row := range rows {
		vector, err := c.Embedder.Embed(ctx, row.Text)
		if err != nil {
			return c.Corpus.Len(), fmt.Errorf("failed to embed corpus idea: %w", err)
		}
		c.Corpus.Add(corpus.KnownIdea{
			Text:      row.Text,
			DomainA:   row.DomainA,
			DomainB:   row.DomainB,
			Embedding: vector,
		})
	}
	return len(rows), nil
}

// SeedConcepts loads concept rows from a spreadsheet and indexes each one
func (c *Container) SeedConcepts(ctx context.Context, path string) (int, error) {
	rows, err := excel.NewSeedReader(path).ReadConcepts()
	if err != nil {
		return 0, fmt.Errorf("failed to read concept seed file: %w", err)
	}

	indexed := 0
	for _, row := range rows {
		if _, err := c.Index.Index(ctx, row.Text, row.Source, row.Domain); err != nil {
			return indexed, fmt.Errorf("failed to index concept: %w", err)
		}
		indexed++
	}
	return indexed, nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
