package monitor

import (
	"github.com/samber/lo"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// Correlate attaches parsed transaction details to process-list rows by
// connection id. The result has the same order and length as sessions; a
// row without an open transaction gets a nil Transaction, which is a
// normal case rather than an error.
func Correlate(sessions []domain.Session, txs map[int64]domain.TransactionDetail) []domain.EnrichedSession {
	return lo.Map(sessions, func(s domain.Session, _ int) domain.EnrichedSession {
		enriched := domain.EnrichedSession{Session: s}
		if tx, ok := txs[s.ID]; ok {
			tx := tx
			enriched.Transaction = &tx
		}
		return enriched
	})
}
