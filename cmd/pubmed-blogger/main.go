package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mateusinhoo/pubmed-blogger-automation/archive"
	"github.com/Mateusinhoo/pubmed-blogger-automation/blogger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/config"
	"github.com/Mateusinhoo/pubmed-blogger-automation/internal/logger"
	"github.com/Mateusinhoo/pubmed-blogger-automation/pubmed"
	"github.com/Mateusinhoo/pubmed-blogger-automation/services"
	"github.com/Mateusinhoo/pubmed-blogger-automation/summarizer"
)

var rootCmd = &cobra.Command{
	Use:   "pubmed-blogger",
	Short: "Daily PubMed-to-Blogger automation",
	Long: `pubmed-blogger searches PubMed for a recent high-impact paper, generates
a general-audience summary with Gemini, publishes the result to Blogger and
always keeps a local copy of the rendered post for auditing.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	rootCmd.Flags().Int("days-back", 0, "publication-date lookback window in days (default from config.yaml)")
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	daysBack, _ := cmd.Flags().GetInt("days-back")
	if daysBack <= 0 {
		daysBack = cfg.Pipeline.DaysBack
	}

	creds := config.CredentialsFromEnv()
	client := pubmed.NewClient(cfg.Pipeline.MaxResults)
	pipe := services.NewPipeline(
		client,
		client,
		summarizer.New(creds.GeminiAPIKey, cfg.GeminiModel),
		blogger.NewPublisher(creds),
		archive.New(cfg.Pipeline.OutputFile),
	)

	result, err := pipe.Run(cmd.Context(), daysBack)
	if err != nil {
		return err
	}

	switch result.Status {
	case services.StatusNoPapers:
		fmt.Println("No recent papers found")
	case services.StatusFetchFailed:
		fmt.Printf("Could not retrieve details for paper ID: %s\n", result.PaperID)
	case services.StatusSummaryFailed:
		fmt.Println("Failed to generate summary")
	case services.StatusCompletedWithErrors:
		fmt.Println("Automation completed with errors")
	case services.StatusSuccess:
		fmt.Println("Automation completed successfully")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
