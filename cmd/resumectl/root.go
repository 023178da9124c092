package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"resume-builder/internal/importer"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/ident"
	infra "resume-builder/pkg/infrastructure"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Work with resume documents from the command line",
		Long:          "resumectl imports, validates and renders resume documents without running the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSlugifyCmd(), newImportCmd(), newValidateCmd(), newRenderCmd())
	return root
}

func newSlugifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "slugify <name>",
		Short:   "Print the URL slug for a resume name",
		Args:    cobra.MinimumNArgs(1),
		Example: `  resumectl slugify "Senior Engineer, Berlin"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ident.Slugify(strings.Join(args, " ")))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var (
		format string
		aiURL  string
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert a document to resume data and print it as JSON",
		Long: `Supported formats: resume-builder-json, json-resume, pdf and docx.
pdf and docx are parsed by the ai-service at --ai-url.`,
		Args:    cobra.ExactArgs(1),
		Example: `  resumectl import --format json-resume resume.json > data.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromExt(args[0])
			}

			var parser importer.DocumentParser
			if aiURL != "" {
				parser = ai.NewClient(aiURL, 2*time.Minute, cliLogger())
			}
			data, err := importer.NewRegistry(parser).Import(cmd.Context(), importer.Source{
				Format: importer.Format(format), Name: filepath.Base(args[0]), Data: raw,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "source format (default: from the file extension)")
	cmd.Flags().StringVar(&aiURL, "ai-url", os.Getenv("RESUME_AI_SERVICE_URL"), "ai-service base URL for pdf and docx")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check resume data against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readData(args[0])
			if err != nil {
				return err
			}
			if err := model.Validate(d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		pdf        bool
		out        string
		chromePath string
	)
	cmd := &cobra.Command{
		Use:     "render <file>",
		Short:   "Render resume data to HTML, or to PDF with --pdf",
		Args:    cobra.ExactArgs(1),
		Example: `  resumectl render --pdf -o resume.pdf data.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readData(args[0])
			if err != nil {
				return err
			}
			if err := model.Validate(d); err != nil {
				return err
			}

			var b []byte
			if pdf {
				b, err = usecase.RenderPDF(cmd.Context(), infra.NewChromedpRenderer(chromePath), d)
			} else {
				b, err = usecase.RenderHTML(d)
			}
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().Bool("html", true, "render HTML (default)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "render PDF through headless Chrome")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&chromePath, "chrome-path", os.Getenv("RESUME_CHROME_PATH"), "Chrome executable")
	cmd.MarkFlagsMutuallyExclusive("html", "pdf")
	return cmd
}

func readData(path string) (*model.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.Parse(raw)
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return string(importer.FormatPDF)
	case ".docx":
		return string(importer.FormatDOCX)
	}
	return string(importer.FormatNative)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cliLogger() zerolog.Logger {
	return logger.NewWithWriter(os.Stderr, "resumectl", "warn")
}
