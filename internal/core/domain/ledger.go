package domain

import "time"

type LedgerAction string

const (
	ActionPayRecharge    LedgerAction = "PAY_RECHARGE"
	ActionManualRecharge LedgerAction = "MANUAL_RECHARGE"
	ActionConsume        LedgerAction = "CONSUME"
)

// QuotaSource is the provenance tag stored with every entry.
type QuotaSource int

const (
	QuotaSourceGateway QuotaSource = 1
	QuotaSourceManual  QuotaSource = 2
	QuotaSourceConsume QuotaSource = 3
)

// LedgerEntry is an immutable signed quota change. Entries are never updated or deleted.
type LedgerEntry struct {
	ID        int64
	UserID    string
	Delta     int64
	Action    LedgerAction
	Source    QuotaSource
	OrderRef  *OrderRef
	Remark    string
	CreatedAt time.Time
}

func (e *LedgerEntry) IsRecharge() bool {
	return e.Delta > 0 && (e.Action == ActionPayRecharge || e.Action == ActionManualRecharge)
}

// QuotaSnapshot is a rebuildable cache of the total recharged quota of a user.
type QuotaSnapshot struct {
	UserID         string
	TotalRecharged int64
	Source         QuotaSource
	UpdatedAt      time.Time
}

// SortOrder selects the direction of ledger listings by creation time.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// HistoryLimit caps every ledger and order listing.
const HistoryLimit = 200

// LogEntry is a ledger entry annotated with the balance right after it.
type LogEntry struct {
	LedgerEntry
	RunningBalance int64
}

// FoldRunningBalance annotates entries (oldest first) with a running balance and returns
// them newest first.
func FoldRunningBalance(entries []*LedgerEntry) []LogEntry {
	result := make([]LogEntry, len(entries))
	var running int64
	for i, e := range entries {
		running += e.Delta
		result[len(entries)-1-i] = LogEntry{LedgerEntry: *e, RunningBalance: running}
	}
	return result
}

// SumDeltas is the balance of the given entries.
func SumDeltas(entries []*LedgerEntry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.Delta
	}
	return sum
}
