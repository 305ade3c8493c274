package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slimpdf/internal/ai"
	"slimpdf/internal/common"
	"slimpdf/internal/config"
	"slimpdf/internal/pipeline"
)

func convertCmd() *cobra.Command {
	var format string
	var level string
	var out string

	cmd := &cobra.Command{
		Use:   "convert <pdf>",
		Short: "Compress a PDF into per-page images or an AI-summarized PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", inputPath, err)
			}

			opts := pipeline.Options{Format: format, Level: level}.Normalize()
			if !common.IsValidFormat(opts.Format) {
				return fmt.Errorf("unknown format %q (jpeg, png or pdf)", opts.Format)
			}
			if !common.IsValidLevel(opts.Level) {
				return fmt.Errorf("unknown level %q (low, medium or high)", opts.Level)
			}

			cfg := config.New()

			var assistant ai.Assistant = ai.Noop{}
			if opts.Format == common.FormatSummaryPDF {
				if cfg.GeminiAPIKey == "" {
					return ai.ErrNotConfigured
				}
				gemini, err := ai.NewGemini(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
				if err != nil {
					return err
				}
				assistant = gemini
			}

			if out == "" {
				out = filepath.Dir(inputPath)
			}

			source := pipeline.SourceFile{
				Name: filepath.Base(inputPath),
				Size: int64(len(data)),
				Data: data,
			}

			p := pipeline.New(cfg.WorkingDir, assistant, cfg.Logger)
			artifacts, err := p.Run(cmd.Context(), source, opts, func(message string) {
				fmt.Fprintln(cmd.ErrOrStderr(), message)
			})
			if err != nil {
				return err
			}

			for _, artifact := range artifacts {
				dest := filepath.Join(out, artifact.Name)
				if err := common.CopyFile(artifact.FilePath, dest); err != nil {
					return fmt.Errorf("failed to write %s: %w", dest, err)
				}
				os.Remove(artifact.FilePath)
				os.Remove(filepath.Dir(artifact.FilePath))
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s -> %s\n",
					dest,
					common.FormatFileSize(artifact.OriginalSize),
					common.FormatFileSize(artifact.CompressedSize))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", common.DefaultFormat, "output format: jpeg|png|pdf")
	cmd.Flags().StringVarP(&level, "level", "l", common.DefaultLevel, "quality level for image formats: low|medium|high")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: next to the input file)")
	return cmd
}
