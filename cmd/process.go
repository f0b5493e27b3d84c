package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pdf-processing-service/internal/config"
	"pdf-processing-service/internal/domain"
	"pdf-processing-service/internal/handler"
)

var processCmd = &cobra.Command{
	Use:   "process [pdf-file]",
	Short: "Process a single PDF from the command line",
	Long: `Process a local PDF file against the remote layout-parsing service
and print the aggregated per-page markdown results as JSON.`,
	Example: `  # Process a document against the default endpoint
  pdf-processing-service process report.pdf

  # Custom endpoint and image size, result written to a file
  pdf-processing-service process report.pdf --api-url http://ocr:8080/layout-parsing --longest-side 1600 -o result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("api-url", "", "Layout-parsing service endpoint (default: OCR_API_URL)")
	processCmd.Flags().Int("longest-side", 0, "Longest-side pixel size (default: DEFAULT_LONGEST_SIDE)")
	processCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	processCmd.Flags().Int("timeout", 0, "Overall processing timeout in seconds (0 = no limit)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("PDF file not found: %s", pdfPath)
	}

	apiURL, _ := cmd.Flags().GetString("api-url")
	longestSide, _ := cmd.Flags().GetInt("longest-side")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	container := config.NewContainer()
	if apiURL == "" {
		apiURL = container.Config.GetOCRAPIURL()
	}
	if longestSide <= 0 {
		longestSide = container.Config.GetDefaultLongestSide()
	}

	ctx := context.Background()
	if timeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
		defer cancel()
	}

	container.Logger.Info("Processing PDF", "path", pdfPath, "api_url", apiURL, "longest_side", longestSide)

	result, err := container.PipelineService.Process(ctx, domain.FromPath(pdfPath), domain.ProcessOptions{
		APIURL:      apiURL,
		LongestSide: longestSide,
	})
	if err != nil {
		return err
	}

	succeeded := 0
	for _, rec := range result.Records {
		if rec.Success {
			succeeded++
		}
	}
	container.Logger.Info("Processing finished", "total_pages", result.TotalPages, "succeeded", succeeded)
	if succeeded < result.TotalPages {
		container.Logger.Warn("Some pages failed", "failed", result.TotalPages-succeeded)
	}

	out, err := json.MarshalIndent(handler.BuildPageResults(result.Records), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	container.Logger.Info("Results written", "path", outputPath)
	return nil
}
