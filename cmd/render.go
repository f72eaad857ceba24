package cmd

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mazadly/boardgen/board"
	"github.com/mazadly/boardgen/config"
	"github.com/mazadly/boardgen/render"
)

var (
	renderFlagInput  string
	renderFlagLogo   string
	renderFlagOutput string
	renderFlagForce  bool
	renderCmd        = &cobra.Command{
		Use:          "render [flags]",
		Short:        "Render a board PDF from a JSON announcement file",
		RunE:         runRender,
		SilenceUsage: true,
	}
)

func init() {
	renderCmd.Flags().StringVarP(&renderFlagInput, "input", "i", "", "Announcement JSON file")
	renderCmd.Flags().StringVarP(&renderFlagLogo, "logo", "l", "", "Logo image file (overrides the logo field in the JSON)")
	renderCmd.Flags().StringVarP(&renderFlagOutput, "output", "o", "board.pdf", "Output file name")
	renderCmd.Flags().BoolVar(&renderFlagForce, "force", false, "Force overwrite output file if exists")
}

type renderConfig struct {
	InputPath  string
	LogoPath   string
	OutputPath string
}

func parseRenderConfig(inputPath, logoPath, outputPath string, force bool) (renderConfig, error) {
	// Validate flags
	if inputPath == "" {
		return renderConfig{}, errors.New("input is a mandatory parameter")
	}
	if outputPath == "" {
		return renderConfig{}, errors.New("output file name cannot be empty")
	}
	if filepath.Ext(outputPath) != ".pdf" {
		return renderConfig{}, errors.New("output file must have extension .pdf")
	}

	// Ensure input file is readable
	if _, err := os.Stat(inputPath); err != nil {
		return renderConfig{}, fmt.Errorf("unable to read input file: %w", err)
	}

	// Check output file already exists
	_, err := os.Stat(outputPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return renderConfig{}, fmt.Errorf("failed to check if output file exists: %w", err)
	}
	if err == nil && !force {
		return renderConfig{}, errors.New("output file already exists: either set flag --force or use another output file")
	}

	return renderConfig{
		InputPath:  inputPath,
		LogoPath:   logoPath,
		OutputPath: outputPath,
	}, nil
}

// RENDER
//  1. Parse the announcement JSON (and optional logo file)
//  2. Validate against the field schema
//  3. Generate the board PDF
//  4. Write the output file
func runRender(cmd *cobra.Command, _ []string) error {
	renderCfg, err := parseRenderConfig(renderFlagInput, renderFlagLogo, renderFlagOutput, renderFlagForce)
	if err != nil {
		return fmt.Errorf("failed to parse render config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(renderCfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var a board.Announcement
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("failed to parse announcement JSON: %w", err)
	}

	if renderCfg.LogoPath != "" {
		logo, err := os.ReadFile(renderCfg.LogoPath)
		if err != nil {
			return fmt.Errorf("failed to read logo file: %w", err)
		}
		a.Logo = base64.StdEncoding.EncodeToString(logo)
	}

	renderer, err := render.New(render.Options{
		TemplatePath: cfg.TemplatePath,
		FontsDir:     cfg.FontsDir,
		Strategy:     cfg.Strategy,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	pdf, err := renderer.Render(cmd.Context(), &a)
	if err != nil {
		var vErr *board.ValidationError
		if errors.As(err, &vErr) {
			for _, spec := range board.Schema {
				if msg, ok := vErr.Fields[spec.Key]; ok {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", spec.Key, msg)
				}
			}
			if msg, ok := vErr.Fields["logo"]; ok {
				fmt.Fprintf(os.Stderr, "  logo: %s\n", msg)
			}
		}
		return fmt.Errorf("failed to render board: %w", err)
	}

	if err := os.WriteFile(renderCfg.OutputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
