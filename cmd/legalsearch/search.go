package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"justlaw-backend/models"
	"justlaw-backend/scraper"
	"justlaw-backend/service"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search decisions across the official sources",
	Long: `Search sends the query to every selected source concurrently, waits for all
of them (each bounded by --timeout), and prints the merged decisions in source
order. Sources that fail or time out are listed under the results.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search text (may also be given as arguments)")
	searchCmd.Flags().String("sources", "", "comma-separated sources: yargitay,danistay,anayasa,rekabet (default all)")
	searchCmd.Flags().Int("limit", models.DefaultSearchLimit, "maximum decisions per source")
	searchCmd.Flags().Duration("timeout", service.DefaultBranchTimeout, "per-source timeout")
	searchCmd.Flags().Bool("json", false, "output the response envelope as JSON")
	searchCmd.Flags().Bool("no-fallback", false, "never generate AI summaries")
	searchCmd.Flags().String("gemini-model", service.DefaultGeminiModel, "Gemini model used for the fallback")
	searchCmd.Flags().String("user-agent", "", "User-Agent sent to the court sites")

	for _, name := range []string{"sources", "limit", "timeout", "no-fallback", "gemini-model", "user-agent"} {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), searchCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("provide a query with --query or as arguments")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []service.SearchServiceOption{
		service.SearchWithScraperOptions(scraper.Options{UserAgent: viper.GetString("user_agent")}),
		service.SearchWithBranchTimeout(viper.GetDuration("timeout")),
	}

	if !viper.GetBool("no_fallback") {
		apiKey := viper.GetString("gemini_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey != "" {
			client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
			if err != nil {
				return fmt.Errorf("init gemini: %w", err)
			}
			defer client.Close()
			gen := service.NewGeminiGenerator(client, viper.GetString("gemini_model"), 0.3)
			opts = append(opts, service.SearchWithGenerator(gen), service.SearchWithFallbackTimeout(30*time.Second))
		}
	}

	svc := service.NewSearchService(opts...)
	req := models.NewSearchRequest(query, models.ParseSources(viper.GetString("sources")), viper.GetInt("limit"))

	env, err := svc.Search(ctx, req)
	if err != nil {
		return err
	}

	if asJSON {
		return service.WriteJSON(env, os.Stdout)
	}
	service.WriteTable(env, os.Stdout)
	return nil
}
