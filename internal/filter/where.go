// Package filter narrows snapshots with --where conditions.
package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// WhereClause represents a parsed --where condition
type WhereClause struct {
	Field    string
	Operator string
	Value    string
	regex    *regexp.Regexp // Compiled regex for ~ and !~ operators
}

// ParseWhereClause parses a where clause like "user=app" or "info~UPDATE"
// Supported operators: =, !=, ~, !~, >=, <=, ^, $
func ParseWhereClause(clause string) (*WhereClause, error) {
	// Try operators in order of length (longest first to avoid partial matches)
	operators := []string{"!~", ">=", "<=", "!=", "~", "=", "^", "$"}

	for _, op := range operators {
		idx := strings.Index(clause, op)
		if idx > 0 {
			field := strings.TrimSpace(clause[:idx])
			value := strings.TrimSpace(clause[idx+len(op):])

			if field == "" || value == "" {
				return nil, fmt.Errorf("invalid where clause: %s", clause)
			}

			wc := &WhereClause{
				Field:    field,
				Operator: op,
				Value:    value,
			}

			// Pre-compile regex for ~ and !~ operators
			if op == "~" || op == "!~" {
				re, err := regexp.Compile(value)
				if err != nil {
					return nil, fmt.Errorf("invalid regex in where clause '%s': %w", clause, err)
				}
				wc.regex = re
			}

			return wc, nil
		}
	}

	return nil, fmt.Errorf("no valid operator found in where clause: %s (use =, !=, ~, !~, >=, <=, ^, $)", clause)
}

// Match checks if an enriched session matches this where clause
func (wc *WhereClause) Match(s domain.EnrichedSession) bool {
	if wc.Operator == ">=" || wc.Operator == "<=" {
		return wc.compareNumeric(s)
	}

	fieldValue := wc.getFieldValue(s)

	switch wc.Operator {
	case "=":
		return fieldValue == wc.Value
	case "!=":
		return fieldValue != wc.Value
	case "~": // Contains (regex)
		if wc.regex != nil {
			return wc.regex.MatchString(fieldValue)
		}
		return strings.Contains(fieldValue, wc.Value)
	case "!~": // Not contains (regex)
		if wc.regex != nil {
			return !wc.regex.MatchString(fieldValue)
		}
		return !strings.Contains(fieldValue, wc.Value)
	case "^": // Starts with
		return strings.HasPrefix(fieldValue, wc.Value)
	case "$": // Ends with
		return strings.HasSuffix(fieldValue, wc.Value)
	}

	return false
}

// getFieldValue extracts the field value from an enriched session
func (wc *WhereClause) getFieldValue(s domain.EnrichedSession) string {
	switch strings.ToLower(wc.Field) {
	case "id":
		return strconv.FormatInt(s.ID, 10)
	case "user":
		return s.User
	case "host":
		return s.Host
	case "db":
		return s.DB
	case "command":
		return s.Command
	case "state":
		return s.State
	case "info":
		return s.Info
	default:
		return ""
	}
}

// compareNumeric handles >= and <= for the numeric fields: time (seconds
// in state) and trx_active (transaction duration; sessions without a
// transaction never match).
func (wc *WhereClause) compareNumeric(s domain.EnrichedSession) bool {
	target, err := strconv.ParseInt(wc.Value, 10, 64)
	if err != nil {
		return false
	}

	var actual int64
	switch strings.ToLower(wc.Field) {
	case "time":
		actual = s.TimeSeconds
	case "trx_active":
		if !s.HasTransaction() {
			return false
		}
		actual = s.Transaction.ActiveSeconds
	default:
		return false
	}

	if wc.Operator == ">=" {
		return actual >= target
	}
	return actual <= target
}

// WhereFilter is a filter that applies multiple where clauses (AND logic)
type WhereFilter struct {
	clauses []*WhereClause
}

// NewWhereFilter creates a filter from multiple where clause strings
func NewWhereFilter(whereClauses []string) (*WhereFilter, error) {
	if len(whereClauses) == 0 {
		return nil, nil
	}

	filter := &WhereFilter{}
	for _, clause := range whereClauses {
		wc, err := ParseWhereClause(clause)
		if err != nil {
			return nil, err
		}
		filter.clauses = append(filter.clauses, wc)
	}

	return filter, nil
}

// Match returns true if the session matches ALL where clauses (AND logic)
func (f *WhereFilter) Match(s domain.EnrichedSession) bool {
	if f == nil {
		return true
	}
	for _, clause := range f.clauses {
		if !clause.Match(s) {
			return false
		}
	}
	return true
}

// Apply keeps the sessions matching the filter, preserving order.
func (f *WhereFilter) Apply(sessions []domain.EnrichedSession) []domain.EnrichedSession {
	if f == nil {
		return sessions
	}
	kept := make([]domain.EnrichedSession, 0, len(sessions))
	for _, s := range sessions {
		if f.Match(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
