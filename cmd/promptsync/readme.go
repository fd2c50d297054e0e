package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/banana-labs/promptsync/internal/cms"
	"github.com/banana-labs/promptsync/internal/output"
	"github.com/banana-labs/promptsync/internal/render"
)

type readmeResult struct {
	Locale   string `json:"locale"`
	File     string `json:"file"`
	Total    int    `json:"total"`
	Featured int    `json:"featured"`
}

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Fetch the curated prompt listing and render localized README files",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		if err := cfg.RequireStore(); err != nil {
			return cmdErr(err, output.ErrInput)
		}

		only, _ := cmd.Flags().GetString("lang")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.OutputDir
		}

		languages := render.SupportedLanguages
		if only != "" {
			lang, ok := render.LanguageByCode(only)
			if !ok {
				return cmdErr(fmt.Errorf("unsupported language %q", only), output.ErrInput)
			}
			languages = []render.Language{lang}
		}

		store := cms.New(cfg.StoreHost, cfg.StoreAPIKey)
		ctx := cmd.Context()

		var results []readmeResult
		for _, lang := range languages {
			w.Info("Processing language %s (%s)", lang.Name, lang.Code)

			cats, err := store.FetchCategories(ctx, lang.Code)
			if err != nil {
				return cmdErr(err, output.ErrTransport)
			}
			w.Info("Fetched %d categories", len(cats.All))

			prompts, total, err := store.FetchAllPrompts(ctx, lang.Code, cats.All)
			if err != nil {
				return cmdErr(err, output.ErrTransport)
			}
			w.Info("Fetched %d prompts (total: %s)", len(prompts), humanize.Comma(int64(total)))

			sorted := cms.SortPrompts(prompts, total)

			page := render.ReadmePage{
				Lang:       lang,
				Stats:      render.Stats{Total: sorted.Stats.Total, Featured: sorted.Stats.Featured},
				Featured:   sorted.Featured,
				Regular:    sorted.Regular,
				Categories: cats.All,
			}
			path, err := render.WriteReadme(outDir, page)
			if err != nil {
				return cmdErr(err, output.ErrGeneral)
			}

			w.Info("Wrote %s (%d total, %d featured)", path, sorted.Stats.Total, sorted.Stats.Featured)
			results = append(results, readmeResult{
				Locale:   lang.Code,
				File:     path,
				Total:    sorted.Stats.Total,
				Featured: sorted.Stats.Featured,
			})
		}

		w.Success(results, fmt.Sprintf("Rendered %d README file(s)", len(results)))
		return nil
	},
}

func init() {
	readmeCmd.Flags().String("lang", "", "Render a single locale (e.g. en-US)")
	readmeCmd.Flags().String("out", "", "Output directory (default from environment, else \".\")")
	rootCmd.AddCommand(readmeCmd)
}
