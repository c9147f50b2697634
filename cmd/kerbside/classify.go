package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/greenloop/kerbside/internal/cli"
	"github.com/greenloop/kerbside/internal/config"
	"github.com/greenloop/kerbside/internal/llm"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [description]",
		Short: "Classify a waste item into the right bin",
		Long: `Classify a waste item against the local council's recycling standards.

Describe the item as an argument, point at a photo with --image, or classify a
whole list of descriptions (one per line) with --file.

Examples:
  kerbside classify "pizza box with grease stains"
  kerbside classify --image driveway_find.jpg
  kerbside classify --file garage_cleanout.txt`,
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("image", "i", "", "JPEG photo of the item to classify")
	cmd.Flags().StringP("file", "f", "", "file of item descriptions, one per line")

	_ = viper.BindPFlag("classify.image", cmd.Flags().Lookup("image"))
	_ = viper.BindPFlag("classify.file", cmd.Flags().Lookup("file"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	imagePath := viper.GetString("classify.image")
	listPath := viper.GetString("classify.file")

	modes := 0
	if len(args) > 0 {
		modes++
	}
	if imagePath != "" {
		modes++
	}
	if listPath != "" {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("provide exactly one of: a description, --image, or --file")
	}

	cfg, err := config.ClassifierConfig()
	if err != nil {
		return err
	}

	classifier, err := llm.NewClassifier(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := classifier.Close(); closeErr != nil {
			slog.Error("Failed to close classifier", "error", closeErr)
		}
	}()

	switch {
	case imagePath != "":
		return classifyImage(ctx, classifier, imagePath)
	case listPath != "":
		return classifyBatch(ctx, classifier, listPath)
	default:
		return classifyText(ctx, classifier, strings.Join(args, " "))
	}
}

func classifyText(ctx context.Context, classifier *llm.Classifier, text string) error {
	result, err := classifier.ClassifyText(ctx, text)
	if err != nil {
		return classifyError(err)
	}

	fmt.Println(cli.RenderClassification(result))
	return nil
}

func classifyImage(ctx context.Context, classifier *llm.Classifier, path string) error {
	jpeg, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	fmt.Fprintln(os.Stderr, cli.SubtleStyle.Render(cli.CameraIcon+" Analyzing photo..."))

	result, err := classifier.ClassifyImage(ctx, jpeg)
	if err != nil {
		return classifyError(err)
	}

	fmt.Println(cli.RenderClassification(result))
	return nil
}

func classifyBatch(ctx context.Context, classifier *llm.Classifier, path string) error {
	file, err := os.Open(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to open descriptions file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("Failed to close descriptions file", "error", closeErr)
		}
	}()

	var items []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read descriptions file: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no descriptions found in %s", path)
	}

	bar := progressbar.NewOptions(len(items),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying items...[reset]"),
	)

	var failed int
	for _, item := range items {
		result, err := classifier.ClassifyText(ctx, item)
		_ = bar.Add(1)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed++
			slog.Warn("failed to classify item", "item", item, "error", err)
			continue
		}

		fmt.Println()
		fmt.Println(cli.RenderClassification(result))
	}
	fmt.Fprintln(os.Stderr)

	if failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d of %d items could not be classified", failed, len(items))))
	}
	return nil
}

// classifyError maps classification failures onto user-facing messages.
func classifyError(err error) error {
	var statusErr *llm.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Errorf("classification service rejected the request (status %d); check your API key and try again", statusErr.Code)
	case errors.Is(err, llm.ErrNetwork):
		return fmt.Errorf("couldn't reach the classification service; check your connection and try again")
	case errors.Is(err, llm.ErrInvalidResponse):
		return fmt.Errorf("classification service returned an unusable answer; try rephrasing the description")
	default:
		return err
	}
}
