package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <resume.json|->",
	Short: "Render a resume JSON file to PDF or HTML",
	Long: "Render a resume JSON file to PDF with headless Chrome, or to HTML with --html. " +
		"The input is normalized first, so partial or legacy documents render too.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderOutputFile string
	renderLocale     string
	renderHTMLOnly   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output file (required)")
	renderCmd.Flags().StringVarP(&renderLocale, "locale", "l", rendering.DefaultLocale, "Locale of section titles (en or ru)")
	renderCmd.Flags().BoolVar(&renderHTMLOnly, "html", false, "Write the HTML page instead of printing a PDF")

	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cliLogger(cfg)

	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	var out []byte
	if renderHTMLOnly {
		html, err := renderHTMLFile(data, renderLocale)
		if err != nil {
			return err
		}
		out = []byte(html)
	} else {
		loader := rendering.LoaderFunc(func(context.Context, string) ([]byte, error) {
			return data, nil
		})
		printer := rendering.NewChromePrinter(cfg.Render.ChromePath, cfg.Render.Timeout)
		out, err = rendering.NewService(loader, printer, log).Render(cmd.Context(), args[0], renderLocale)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(renderOutputFile, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", renderOutputFile, len(out))
	return nil
}

// renderHTMLFile normalizes a resume document and renders its HTML page.
func renderHTMLFile(data []byte, locale string) (string, error) {
	doc, report := resume.Normalize(data)
	if report.Malformed {
		return "", fmt.Errorf("resume is not a JSON object")
	}
	return rendering.RenderHTML(doc, locale)
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
