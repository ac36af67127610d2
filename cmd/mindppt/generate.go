package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sant0-9/mindppt/internal/apierr"
	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
	"github.com/sant0-9/mindppt/internal/writer"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Analyze a file and write the deck without the terminal app",
	Long: `Generate runs analysis, outline generation and rendering back to back on
a .txt or .md file, then writes the .pptx and the mind map Markdown to the
output directory. Existing files are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		styleID, _ := cmd.Flags().GetString("style")
		out, _ := cmd.Flags().GetString("out")

		src, err := document.LoadSource(file)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.LogMode)
		if err != nil {
			return err
		}
		defer log.Sync()

		p := pipeline.New(
			func() (llm.Provider, error) { return llm.NewProvider(cfg) },
			pipeline.WithLogger(log),
			pipeline.WithGuard(llm.NewGuard(llm.DefaultGuardConfig(), nil)),
		)
		p.SetProgressCallback(func(pr pipeline.Progress) {
			if pr.Message != "" {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", pr.Stage, pr.Message)
			}
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		analysis, err := p.Analyze(ctx, pipeline.AnalyzeRequest{Text: src.Text, Style: styleID})
		if err != nil {
			return userError(err, pipeline.FallbackAnalyze)
		}
		ol, err := p.GenerateOutline(ctx, pipeline.OutlineRequest{Text: src.Text, Style: styleID, Analysis: analysis})
		if err != nil {
			return userError(err, pipeline.FallbackOutline)
		}
		art, err := p.GenerateDocument(ctx, pipeline.DocumentRequest{Outline: ol.Outline, Style: styleID})
		if err != nil {
			return userError(err, pipeline.FallbackDocument)
		}

		w := writer.NewWriter(out)
		deckPath, err := w.WriteArtifact(art)
		if err != nil {
			return err
		}
		mindmapPath, err := w.WriteMindmap(ol, style.Get(analysis.Suggestions.RecommendedStyle).Name)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d slides, %s)\n%s\n", deckPath, art.SlideCount, art.SizeHuman(), mindmapPath)
		return nil
	},
}

// userError keeps the classified message in front and the cause after it.
func userError(err error, fallback string) error {
	ae := apierr.Classify(err, fallback)
	if ae.Err == nil {
		return fmt.Errorf("%s", ae.Message)
	}
	return fmt.Errorf("%s: %w", ae.Message, ae.Err)
}

func init() {
	generateCmd.Flags().StringP("file", "f", "", "input .txt or .md file")
	generateCmd.Flags().StringP("style", "s", "", "presentation style id (see \"mindppt styles\")")
	generateCmd.Flags().StringP("out", "o", ".", "output directory")
	_ = generateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(generateCmd)
}
