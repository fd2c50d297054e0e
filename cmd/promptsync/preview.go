package main

import (
	"fmt"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/banana-labs/promptsync/internal/output"
	"github.com/banana-labs/promptsync/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a generated README in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		path := filepath.Join(cfg.OutputDir, render.SupportedLanguages[0].ReadmeFile)
		if len(args) == 1 {
			path = args[0]
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cmdErr(fmt.Errorf("%s not found, run 'promptsync readme' first", path), output.ErrNotFound)
			}
			return cmdErr(fmt.Errorf("reading %s: %w", path, err), output.ErrGeneral)
		}

		rendered, err := render.RenderMarkdown(string(data))
		if err != nil {
			return cmdErr(fmt.Errorf("rendering %s: %w", path, err), output.ErrGeneral)
		}

		w.Info("%s (%s)", path, humanize.Bytes(uint64(len(data))))
		w.Success(struct {
			File string `json:"file"`
			Size int    `json:"size"`
		}{File: path, Size: len(data)}, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
