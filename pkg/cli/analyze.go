package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/pkg/analyzer"
	"github.com/reviewlens/reviewlens/pkg/llms"
	"github.com/reviewlens/reviewlens/pkg/prompts"
)

var flagConcurrency int

func init() {
	analyzeCmd.Flags().IntVar(&flagConcurrency, "concurrency", 4, "Maximum concurrent completion requests")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [review...]",
	Short: "Classify the sentiment of one or more product reviews",
	Long:  "Classifies each review passed as an argument, or reads one review per line from stdin when no arguments are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews := args
		if len(reviews) == 0 {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					reviews = append(reviews, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read reviews from stdin: %w", err)
			}
		}
		if len(reviews) == 0 {
			return fmt.Errorf("no reviews to analyze")
		}

		model, err := llms.NewOpenRouterModel(resolver, logger)
		if err != nil {
			return err
		}

		store := prompts.NewStore(resolver.StringValue("prompts.directory", prompts.DefaultDirectory))
		a := analyzer.New(model, resolver, store, logger)

		logger.Info().
			Int("count", len(reviews)).
			Int("concurrency", flagConcurrency).
			Str("model", resolver.StringValue("openrouter.model", "")).
			Msg("Analyzing reviews")

		results := a.AnalyzeBatch(cmd.Context(), reviews, flagConcurrency)

		failed := 0
		out := cmd.OutOrStdout()
		for i, res := range results {
			fmt.Fprintf(out, "--- review %d ---\n", i+1)
			fmt.Fprintf(out, "%s\n", res.Review)
			if res.Err != nil {
				failed++
				fmt.Fprintf(out, "error: %v\n", res.Err)
				continue
			}
			fmt.Fprintf(out, "%s\n", res.Sentiment)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d reviews failed", failed, len(results))
		}
		return nil
	},
}
