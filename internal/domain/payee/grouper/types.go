// Package grouper resolves raw statement payee strings into canonical payee
// entities: it clusters near-duplicate rows, picks one display name per
// cluster, ranks clusters against payees the workspace already knows, and
// applies previously learned user decisions.
package grouper

import (
	"github.com/google/uuid"
)

// RowInput is one raw statement line handed over by the import parser.
// OriginalPayee holds the untouched CSV string and falls back to PayeeName
// when the parser had no separate raw column.
type RowInput struct {
	RowIndex      int
	PayeeName     string
	OriginalPayee string
}

// normalizedRow carries the derived comparison keys for one grouping pass.
type normalizedRow struct {
	RowInput
	normalizedPayee string
	cleanedPayee    string
}

// GroupMember records one row's membership inside a group.
type GroupMember struct {
	RowIndex        int
	OriginalPayee   string
	NormalizedPayee string
}

// UserDecision is the review state of a group after the pipeline ran.
type UserDecision string

const (
	DecisionAccept  UserDecision = "accept"
	DecisionPending UserDecision = "pending"
)

// ExistingMatch is the best already-known payee found for a group.
type ExistingMatch struct {
	ID         int64
	Name       string
	Confidence float64
}

// LookupStage tags which external lookup a diagnostic refers to.
type LookupStage string

const (
	StageTransferLookup LookupStage = "transfer_lookup"
	StageAliasLookup    LookupStage = "alias_lookup"
	StageAccountLookup  LookupStage = "account_lookup"
)

// Diagnostic is a non-fatal per-group failure report. A diagnostic never
// aborts the batch; the group is returned as computed before the failing
// lookup.
type Diagnostic struct {
	Stage   LookupStage
	Message string
}

// Group is one resolved payee cluster. Every input row belongs to exactly
// one group.
type Group struct {
	ID                  uuid.UUID
	CanonicalName       string
	Confidence          float64
	Members             []GroupMember
	UserDecision        UserDecision
	ExistingMatch       *ExistingMatch
	TransferAccountID   *int64
	TransferAccountName string
	Diagnostics         []Diagnostic
}

// Stats summarizes one grouping pass.
type Stats struct {
	TotalPayees     int
	UniqueGroups    int
	ExistingMatches int
	AutoAccepted    int
}

// GrouperResult is the final output of AnalyzePayees.
type GrouperResult struct {
	Groups []Group
	Stats  Stats
}

// Payee is an already-known payee entity in the workspace.
type Payee struct {
	ID   int64
	Name string
}

// RankedMatch pairs a candidate payee with its similarity score.
type RankedMatch struct {
	Payee Payee
	Score float64
}

// TransferMapping is a user-confirmed "this raw string is a transfer"
// record pointing at the target account.
type TransferMapping struct {
	TargetAccountID int64
}

// PayeeAlias is a user-confirmed mapping from a raw string to a payee.
type PayeeAlias struct {
	PayeeID    int64
	Confidence float64
}
