package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// RenderTable prints the ranked sessions as an ASCII table. Statement
// text is truncated to infoWidth runes (0 disables truncation).
func RenderTable(w io.Writer, sessions []domain.EnrichedSession, infoWidth int) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "USER", "HOST", "DB", "COMMAND", "TIME", "STATE", "TRX ACTIVE", "INFO")
	for _, s := range sessions {
		if err := table.Append([]string{
			fmt.Sprintf("%d", s.ID),
			s.User,
			s.Host,
			s.DB,
			s.Command,
			fmt.Sprintf("%ds", s.TimeSeconds),
			s.State,
			trxActive(s),
			truncate(oneLine(s.Info), infoWidth),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	open := lo.CountBy(sessions, domain.EnrichedSession.HasTransaction)
	_, err := fmt.Fprintf(w, "%d sessions, %d with open transactions\n", len(sessions), open)
	return err
}

// trxActive renders the transaction column: "-" for no transaction, "?"
// when the report did not state a duration.
func trxActive(s domain.EnrichedSession) string {
	switch {
	case !s.HasTransaction():
		return "-"
	case !s.Transaction.HasKnownDuration():
		return "?"
	default:
		return fmt.Sprintf("%ds", s.Transaction.ActiveSeconds)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
