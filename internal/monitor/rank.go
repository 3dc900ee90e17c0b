package monitor

import (
	"sort"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// Rank orders enriched sessions in place for presentation: sessions with
// an open transaction first, longest-active first; the rest by time in
// state, descending. The sort is stable so equal keys keep their
// process-list order.
func Rank(sessions []domain.EnrichedSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		switch {
		case a.HasTransaction() != b.HasTransaction():
			return a.HasTransaction()
		case a.HasTransaction():
			return a.Transaction.ActiveSeconds > b.Transaction.ActiveSeconds
		default:
			return a.TimeSeconds > b.TimeSeconds
		}
	})
}
