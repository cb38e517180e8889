package grouper

import "context"

// TransferMappingStore looks up user-confirmed transfer mappings keyed by
// the raw statement string and workspace. A miss is (nil, nil).
type TransferMappingStore interface {
	FindByRawString(ctx context.Context, raw string, workspaceID int64) (*TransferMapping, error)
}

// AliasStore looks up user-confirmed payee aliases keyed by the raw
// statement string and workspace. A miss is (nil, nil).
type AliasStore interface {
	FindByRawString(ctx context.Context, raw string, workspaceID int64) (*PayeeAlias, error)
}

// AccountLookup resolves account display names for transfer targets.
type AccountLookup interface {
	NameByID(ctx context.Context, accountID int64) (string, error)
}
