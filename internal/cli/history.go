package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/journal"
	"github.com/mesh-intelligence/stockroom/internal/paths"
)

func newHistoryCmd(a *app) *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or export the placement journal",
		Long:  "History lists the events recorded by --journal runs, oldest first.\nWith --export the events are written to a JSONL file instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHistory(cmd, export)
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "write the journal to this JSONL file")
	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, export string) error {
	cfg, err := loadConfig(a.configDir)
	if err != nil {
		return userErrorf("%w", err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysErrorf("resolve data dir: %w", err)
	}
	j, err := journal.Open(dataDir)
	if err != nil {
		return sysErrorf("open journal: %w", err)
	}
	defer j.Close()

	out := printer{w: cmd.OutOrStdout(), jsonMode: a.flags.jsonMode}
	if export != "" {
		if err := j.ExportJSONL(export); err != nil {
			return sysErrorf("export journal: %w", err)
		}
		return out.message(fmt.Sprintf("exported journal to %s", export))
	}

	entries, err := j.Events()
	if err != nil {
		return sysErrorf("read journal: %w", err)
	}
	if a.flags.jsonMode {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return out.json(entries)
	}
	if len(entries) == 0 {
		return out.message("No recorded events")
	}
	for _, e := range entries {
		fmt.Fprintf(out.w, "%s %-7s %d %s %v\n", e.At.Format("2006-01-02T15:04:05Z07:00"), e.Kind, e.ItemID, e.Name, e.Positions)
	}
	return nil
}
