package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banana-labs/promptsync/internal/cms"
	"github.com/banana-labs/promptsync/internal/output"
	syncpkg "github.com/banana-labs/promptsync/internal/sync"
	"github.com/banana-labs/promptsync/internal/tracker"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync an approved submission issue into the content store",
	Long: `Sync reads the triggering issue from the environment (ISSUE_NUMBER,
ISSUE_BODY), uploads its referenced images, and creates or updates the
matching prompt record in the store. Issues without the submission label
are skipped with a success exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		if err := cfg.RequireSync(); err != nil {
			return cmdErr(err, output.ErrInput)
		}

		syncer := &syncpkg.Syncer{
			Store:   cms.New(cfg.StoreHost, cfg.StoreAPIKey),
			Tracker: tracker.New(cfg.TrackerToken, cfg.Repository),
			Out:     w,
		}

		result, err := syncer.Run(cmd.Context(), cfg.IssueNumber, cfg.IssueBody)
		if err != nil {
			return cmdErr(err, output.ErrTransport)
		}

		if result.Skipped {
			w.Skip(result.SkipReason)
			return nil
		}

		verb := "Updated"
		if result.Created {
			verb = "Created"
		}
		msg := fmt.Sprintf("%s prompt %d from issue #%s (%d image(s) uploaded",
			verb, result.PromptID, cfg.IssueNumber, result.Uploaded)
		if result.Failed > 0 {
			msg += fmt.Sprintf(", %d failed", result.Failed)
		}
		msg += ")"

		w.Success(result, msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
