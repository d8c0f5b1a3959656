package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ideaforge/adapters/postgres"
	"ideaforge/domain/concept"
	"ideaforge/domain/core"
	"ideaforge/internal/config"
	"ideaforge/internal/container"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ideaforge",
		Short: "IdeaForge CLI for running cross-domain ideation sessions",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newExploreCmd(),
		newSessionsCmd(),
		newShowCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildContainer loads config, connects the database, and wires everything
func buildContainer(ctx context.Context) (*container.Container, error) {
	if err := godotenv.Load(); err != nil {
		// system environment only
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	c, err := container.New(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := c.InitWithDatabase(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func newRunCmd() *cobra.Command {
	var (
		topic      string
		domains    []string
		iterations int
		corpusFile string
		seedFile   string
	)

	cmd := &cobra.Command{
		Use:   "run [problem statement]",
		Short: "Run an ideation session against a problem statement",
		Long: `Run a full ideation session: index seed concepts, bridge the problem
across the given domains, generate and score candidates, and print the
final Pareto frontier.

Example: ideaforge run "reduce alert fatigue in on-call rotations" \
  --topic alerting --domains software,immunology,urban-planning \
  --concepts seeds.xlsx --corpus known_ideas.csv --iterations 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem := args[0]
			if topic == "" {
				topic = problem
			}
			return runSession(cmd.Context(), topic, problem, domains, iterations, corpusFile, seedFile)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "short session topic (defaults to the problem statement)")
	cmd.Flags().StringSliceVar(&domains, "domains", nil, "knowledge domains, source first (at least two)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "iteration count (default from ENGINE_ITERATIONS)")
	cmd.Flags().StringVar(&corpusFile, "corpus", "", "reference corpus seed file (xlsx or csv)")
	cmd.Flags().StringVar(&seedFile, "concepts", "", "concept seed file for the index (xlsx or csv)")
	cmd.MarkFlagRequired("domains")

	return cmd
}

func runSession(ctx context.Context, topic, problem string, domains []string, iterations int, corpusFile, seedFile string) error {
	c, err := buildContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if corpusFile == "" {
		corpusFile = c.Config.Engine.CorpusFile
	}
	if corpusFile != "" {
		n, err := c.SeedCorpus(ctx, corpusFile)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded reference corpus with %d known ideas\n", n)
	}
	if seedFile != "" {
		n, err := c.SeedConcepts(ctx, seedFile)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d seed concepts\n", n)
	}

	if iterations <= 0 {
		iterations = c.Config.Engine.Iterations
	}

	rec, err := c.Sessions.Create(ctx, topic, problem, domains)
	if err != nil {
		return err
	}
	fmt.Printf("Session %s started (%d iterations)\n", rec.ID, iterations)

	summary, err := c.Engine.Run(ctx, rec.ID, topic, problem, domains, iterations)
	if err != nil {
		return err
	}

	if err := c.Sessions.Archive(ctx, rec.ID, summary.String()); err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}

	fmt.Printf("\n%s\n\n", summary.String())
	if len(summary.Frontier) == 0 {
		fmt.Println("No candidates survived selection.")
		return nil
	}

	fmt.Println("Pareto frontier:")
	for _, sc := range summary.Frontier {
		fmt.Printf("  #%d [%s] novelty=%.2f utility=%.2f combined=%.2f\n     %s\n",
			sc.Candidate.ParetoRank, sc.Candidate.Strategy,
			sc.Novelty.Value, sc.Utility.Value, sc.Combined,
			sc.Candidate.Description)
	}
	return nil
}

func newExploreCmd() *cobra.Command {
	var (
		seedFile string
		level    string
		k        int
	)

	cmd := &cobra.Command{
		Use:   "explore [query]",
		Short: "Rank indexed concepts by bridging potential for a query",
		Long: `Index seed concepts and retrieve the ones most worth bridging from:
results are ranked by similarity boosted by abstraction distance from the
query's level, so productive far-level analogies surface above
near-duplicates. Nothing is persisted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sourceLevel, err := concept.ParseLevel(level)
			if err != nil {
				return err
			}

			if err := godotenv.Load(); err != nil {
				// system environment only
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.SeedConcepts(ctx, seedFile)
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d seed concepts\n\n", n)

			results, err := c.Index.RetrieveCrossLevel(ctx, args[0], sourceLevel, concept.AllLevels, k)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No concepts retrieved.")
				return nil
			}
			for _, r := range results {
				fmt.Printf("  %.3f [%s/%s] %s\n", r.Potential, r.Node.Domain, r.Node.Level, r.Node.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "concepts", "", "concept seed file for the index (xlsx or csv)")
	cmd.Flags().StringVar(&level, "level", "concrete", "abstraction level of the query")
	cmd.Flags().IntVar(&k, "k", 5, "results per abstraction level")
	cmd.MarkFlagRequired("concepts")

	return cmd
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored ideation sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := buildContainer(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			sessions, err := c.SessionRepo.List(ctx)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			for _, s := range sessions {
				line := fmt.Sprintf("%s  [%s]  %s  domains=%s", s.ID, s.Status, s.Topic, strings.Join(s.Domains, ","))
				if s.Summary != "" {
					line += "  " + s.Summary
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session's iterations and final frontier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := core.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			c, err := buildContainer(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			records, err := c.IterationRepo.ListBySession(ctx, id)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(records)
			}

			if len(records) == 0 {
				fmt.Println("No iterations recorded.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("iteration %d: attempted=%d scored=%d frontier=%d mean novelty=%.2f mean utility=%.2f\n",
					rec.Sequence, rec.Result.Stats.Attempted, len(rec.Scored),
					rec.Result.Stats.FrontierSize, rec.Result.Stats.MeanNovelty, rec.Result.Stats.MeanUtility)
			}
			last := records[len(records)-1]
			fmt.Println("\nFinal frontier:")
			for _, sc := range last.Result.Frontier {
				fmt.Printf("  #%d [%s] combined=%.2f  %s\n",
					sc.Candidate.ParetoRank, sc.Candidate.Strategy, sc.Combined, sc.Candidate.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw iteration records as JSON")
	return cmd
}
