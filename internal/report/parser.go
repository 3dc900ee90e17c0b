// Package report extracts per-session transaction details from the raw
// text of SHOW ENGINE INNODB STATUS. The report format drifts between
// server versions, so parsing is best-effort: unknown lines accumulate
// into the current block and missing fields fall back to sentinels.
package report

import (
	"strconv"
	"strings"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// Line markers of the transactions section. These are stable across
// MariaDB versions even though the surrounding report is not.
const (
	sectionMarker    = "LIST OF TRANSACTIONS FOR EACH SESSION:"
	txStartMarker    = "---TRANSACTION"
	threadIDMarker   = "MariaDB thread id"
	sectionEndMarker = "--------"
	activeMarker     = ", ACTIVE "
)

// scanState is the scanner position relative to the transactions section.
type scanState int

const (
	stateSeeking   scanState = iota // before the section marker
	stateInSection                  // inside the section, current block open
)

// txAccum collects the lines of one transaction block while the scanner
// is still inside it. When the block is finalized under a thread id, the
// map keeps the same accumulator, so lines appended afterwards are still
// visible through the map entry until the block is sealed.
type txAccum struct {
	activeSeconds int64
	lines         []string
}

func (a *txAccum) seal() domain.TransactionDetail {
	lines := make([]string, len(a.lines))
	copy(lines, a.lines)
	return domain.TransactionDetail{ActiveSeconds: a.activeSeconds, Lines: lines}
}

// scanner walks the report line by line. Predicates are checked in fixed
// priority: transaction start, thread id, terminator. Every line inside
// the section accumulates into the current block; only the terminator
// ends the scan.
type scanner struct {
	state scanState
	cur   *txAccum
	txs   map[int64]*txAccum
}

// step consumes one line and reports whether scanning should continue.
func (s *scanner) step(line string) bool {
	switch s.state {
	case stateSeeking:
		if strings.Contains(line, sectionMarker) {
			s.state = stateInSection
			s.cur = &txAccum{activeSeconds: domain.UnknownActive}
		}
		return true
	case stateInSection:
		switch {
		case strings.HasPrefix(line, txStartMarker):
			// Previous accumulator is abandoned unless a thread id
			// line already placed it in the map.
			s.cur = &txAccum{activeSeconds: parseActiveSeconds(line)}
		case strings.HasPrefix(line, threadIDMarker):
			if id, ok := parseThreadID(line); ok {
				// Duplicate thread id in one report: last write wins.
				s.txs[id] = s.cur
			}
		case strings.HasPrefix(line, sectionEndMarker):
			return false
		}
		s.cur.lines = append(s.cur.lines, line)
		return true
	}
	return true
}

// ParseTransactions maps each session id mentioned in the transactions
// section of the report to its open transaction. A report without the
// section marker yields an empty map; blocks that never name a thread id
// are dropped. The function is pure and never fails.
func ParseTransactions(text string) map[int64]domain.TransactionDetail {
	s := scanner{txs: make(map[int64]*txAccum)}
	for _, line := range strings.Split(text, "\n") {
		if !s.step(line) {
			break
		}
	}

	out := make(map[int64]domain.TransactionDetail, len(s.txs))
	for id, acc := range s.txs {
		out[id] = acc.seal()
	}
	return out
}

// parseActiveSeconds extracts n from ", ACTIVE n sec" on a transaction
// start line. Anything malformed yields the unknown sentinel.
func parseActiveSeconds(line string) int64 {
	idx := strings.Index(line, activeMarker)
	if idx < 0 {
		return domain.UnknownActive
	}
	rest := strings.Fields(line[idx+len(activeMarker):])
	if len(rest) == 0 {
		return domain.UnknownActive
	}
	n, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return domain.UnknownActive
	}
	return n
}

// parseThreadID extracts the session id from a "MariaDB thread id N, ..."
// line: the fourth whitespace-separated token, minus the trailing comma.
func parseThreadID(line string) (int64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(fields[3], ","), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
