package domain

// UnknownActive is the sentinel for a transaction whose active duration
// could not be extracted from the engine status report.
const UnknownActive int64 = -1

// Session is one row of the server's process list: an active connection
// and whatever it is currently executing.
type Session struct {
	ID          int64   `json:"id"`           // Connection/thread id, unique per snapshot
	User        string  `json:"user"`         // Account that owns the connection
	Host        string  `json:"host"`         // Originating host:port
	DB          string  `json:"db"`           // Default database ("" when NULL)
	Command     string  `json:"command"`      // Query, Sleep, Binlog Dump, ...
	TimeSeconds int64   `json:"time_seconds"` // Seconds in the current state
	State       string  `json:"state"`        // Engine state description
	Info        string  `json:"info"`         // Statement text, may be long
	Progress    float64 `json:"progress"`     // Stage progress percentage
}

// TransactionDetail is one open transaction mined from the InnoDB status
// report. Lines holds the raw report lines of the block in file order.
type TransactionDetail struct {
	ActiveSeconds int64    `json:"active_seconds"` // -1 when not reported
	Lines         []string `json:"lines"`
}

// HasKnownDuration reports whether the ACTIVE duration was parsed.
func (t TransactionDetail) HasKnownDuration() bool {
	return t.ActiveSeconds != UnknownActive
}

// EnrichedSession pairs a process-list row with its open transaction, if
// the status report mentioned one for this connection id.
type EnrichedSession struct {
	Session
	Transaction *TransactionDetail `json:"transaction,omitempty"`
}

// HasTransaction reports whether an open transaction is attached.
func (e EnrichedSession) HasTransaction() bool {
	return e.Transaction != nil
}
