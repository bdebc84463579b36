package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a stored session as an org-mode report",
	Long: `Read a session, its decisions and its equity curve from the SQLite
journal and render them as org-mode.

Examples:
  papertrader report --db papertrader.sqlite --session 01HV...
  papertrader report --db papertrader.sqlite --session 01HV... --out session.org`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportDBPath    string
	reportSessionID string
	reportOutPath   string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportDBPath, "db", "d", defaultDBPath, "path to SQLite journal DB (default: journal.db_path from --config)")
	reportCmd.Flags().StringVar(&reportSessionID, "session", "", "session id (default: most recent)")
	reportCmd.Flags().StringVarP(&reportOutPath, "out", "o", "", "write the report to this file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	j, dbPath, err := openJournalDB(cmd, reportDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	sess, err := findSession(j, dbPath, reportSessionID)
	if err != nil {
		return err
	}

	fills, err := j.ListFills(sess.SessionID)
	if err != nil {
		return fmt.Errorf("query fills: %w", err)
	}
	equity, err := j.ListEquity(sess.SessionID)
	if err != nil {
		return fmt.Errorf("query equity: %w", err)
	}

	if reportOutPath != "" {
		if err := journal.WriteSessionOrg(reportOutPath, sess, fills, equity); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", reportOutPath)
		return nil
	}

	text, err := journal.FormatSessionOrg(sess, fills, equity)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// findSession returns the session with id, or the newest one when id is
// empty.
func findSession(j *journal.SQLite, dbPath, id string) (journal.SessionRecord, error) {
	if id != "" {
		s, err := j.GetSession(id)
		if err != nil {
			return s, fmt.Errorf("get session: %w", err)
		}
		return s, nil
	}

	all, err := j.ListSessions()
	if err != nil {
		return journal.SessionRecord{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(all) == 0 {
		return journal.SessionRecord{}, fmt.Errorf("no sessions in %s", dbPath)
	}
	return all[0], nil
}
