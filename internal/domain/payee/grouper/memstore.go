package grouper

import (
	"context"
	"sync"
)

// In-memory store implementations. They back the CLI preview mode and keep
// the pipeline testable without a database.

// MemoryTransferStore is a workspace-scoped in-memory TransferMappingStore.
type MemoryTransferStore struct {
	mu       sync.RWMutex
	mappings map[int64]map[string]int64
}

var _ TransferMappingStore = (*MemoryTransferStore)(nil)

// NewMemoryTransferStore creates an empty in-memory transfer-mapping store.
func NewMemoryTransferStore() *MemoryTransferStore {
	return &MemoryTransferStore{mappings: make(map[int64]map[string]int64)}
}

// Add records a raw string → target account mapping for a workspace.
func (s *MemoryTransferStore) Add(workspaceID int64, raw string, targetAccountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.mappings[workspaceID]
	if !ok {
		ws = make(map[string]int64)
		s.mappings[workspaceID] = ws
	}
	ws[raw] = targetAccountID
}

// FindByRawString implements TransferMappingStore.
func (s *MemoryTransferStore) FindByRawString(_ context.Context, raw string, workspaceID int64) (*TransferMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if target, ok := s.mappings[workspaceID][raw]; ok {
		return &TransferMapping{TargetAccountID: target}, nil
	}
	return nil, nil
}

// MemoryAliasStore is a workspace-scoped in-memory AliasStore.
type MemoryAliasStore struct {
	mu      sync.RWMutex
	aliases map[int64]map[string]PayeeAlias
}

var _ AliasStore = (*MemoryAliasStore)(nil)

// NewMemoryAliasStore creates an empty in-memory alias store.
func NewMemoryAliasStore() *MemoryAliasStore {
	return &MemoryAliasStore{aliases: make(map[int64]map[string]PayeeAlias)}
}

// Add records a raw string → payee alias for a workspace.
func (s *MemoryAliasStore) Add(workspaceID int64, raw string, payeeID int64, confidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.aliases[workspaceID]
	if !ok {
		ws = make(map[string]PayeeAlias)
		s.aliases[workspaceID] = ws
	}
	ws[raw] = PayeeAlias{PayeeID: payeeID, Confidence: confidence}
}

// FindByRawString implements AliasStore.
func (s *MemoryAliasStore) FindByRawString(_ context.Context, raw string, workspaceID int64) (*PayeeAlias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if alias, ok := s.aliases[workspaceID][raw]; ok {
		return &alias, nil
	}
	return nil, nil
}

// MemoryAccountLookup resolves account names from a fixed map.
type MemoryAccountLookup struct {
	mu    sync.RWMutex
	names map[int64]string
}

var _ AccountLookup = (*MemoryAccountLookup)(nil)

// NewMemoryAccountLookup creates an empty in-memory account lookup.
func NewMemoryAccountLookup() *MemoryAccountLookup {
	return &MemoryAccountLookup{names: make(map[int64]string)}
}

// Add registers an account name.
func (l *MemoryAccountLookup) Add(accountID int64, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names[accountID] = name
}

// NameByID implements AccountLookup. Unknown accounts resolve to "".
func (l *MemoryAccountLookup) NameByID(_ context.Context, accountID int64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.names[accountID], nil
}
