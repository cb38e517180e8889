package grouper

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerline/payee-resolver/internal/domain/payee/normalizer"
)

// Grouper runs the payee entity-resolution pipeline for one import batch:
// normalize → cluster → canonical name → existing-payee match → overrides →
// aggregate. External stores are read-only during a pass; the engine never
// writes, so aborting mid-batch is always safe.
type Grouper struct {
	cfg       Config
	matcher   PayeeMatcher
	transfers TransferMappingStore
	aliases   AliasStore
	accounts  AccountLookup
	logger    *slog.Logger
}

// aliasConfidenceFloor is the minimum stored alias confidence an alias hit
// needs before it forces a group to accept.
const aliasConfidenceFloor = 0.8

// New creates a Grouper, validating the configuration up front.
func New(cfg Config, logger *slog.Logger) (*Grouper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grouper config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Grouper{
		cfg:     cfg,
		matcher: FuzzyMatcher{},
		logger:  logger,
	}, nil
}

// WithMatcher replaces the default fuzzy matcher.
func (g *Grouper) WithMatcher(m PayeeMatcher) *Grouper {
	g.matcher = m
	return g
}

// WithTransferStore attaches a transfer-mapping store.
func (g *Grouper) WithTransferStore(s TransferMappingStore) *Grouper {
	g.transfers = s
	return g
}

// WithAliasStore attaches a payee alias store.
func (g *Grouper) WithAliasStore(s AliasStore) *Grouper {
	g.aliases = s
	return g
}

// WithAccountLookup attaches the account-name resolver used for transfer
// targets.
func (g *Grouper) WithAccountLookup(l AccountLookup) *Grouper {
	g.accounts = l
	return g
}

// AnalyzePayees resolves one batch of raw statement rows into payee groups.
// It is deterministic and idempotent for a fixed input order and external
// store state, modulo the run-scoped group IDs.
func (g *Grouper) AnalyzePayees(ctx context.Context, rows []RowInput, existingPayees []Payee, workspaceID int64) (*GrouperResult, error) {
	if len(rows) == 0 {
		return &GrouperResult{Groups: []Group{}}, nil
	}

	normalized := make([]normalizedRow, len(rows))
	for i, row := range rows {
		if row.OriginalPayee == "" {
			row.OriginalPayee = row.PayeeName
		}
		normalized[i] = normalizedRow{
			RowInput:        row,
			normalizedPayee: normalizer.NormalizePayeeName(row.PayeeName),
			cleanedPayee:    normalizer.CleanPayeeName(row.OriginalPayee),
		}
	}

	ds, err := g.cluster(ctx, normalized)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(normalized))
	for _, class := range ds.sets() {
		members := make([]normalizedRow, len(class))
		for i, idx := range class {
			members[i] = normalized[idx]
		}
		groups = append(groups, g.buildGroup(members))
	}

	if err := g.resolveGroups(ctx, groups, existingPayees, workspaceID); err != nil {
		return nil, err
	}

	result := &GrouperResult{
		Groups: groups,
		Stats:  aggregateStats(groups),
	}
	g.logger.Debug("payee grouping finished",
		"rows", len(rows),
		"groups", result.Stats.UniqueGroups,
		"existingMatches", result.Stats.ExistingMatches,
		"autoAccepted", result.Stats.AutoAccepted,
	)
	return result, nil
}

// cluster unions every row pair whose similarity clears the grouping
// threshold. The O(N²) comparisons fan out across a worker pool; unions are
// applied by the collecting goroutine and commute, so the partition does not
// depend on scheduling.
func (g *Grouper) cluster(ctx context.Context, rows []normalizedRow) (*disjointSet, error) {
	ds := newDisjointSet(len(rows))
	if len(rows) < 2 {
		return ds, nil
	}

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(rows) {
		workerCount = len(rows)
	}

	jobs := make(chan int, workerCount*4)
	links := make(chan [2]int, workerCount*4)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				for j := i + 1; j < len(rows); j++ {
					if Similarity(rows[i].normalizedPayee, rows[j].normalizedPayee) < g.cfg.GroupingThreshold {
						continue
					}
					select {
					case links <- [2]int{i, j}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < len(rows)-1; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(links)
	}()

	for link := range links {
		ds.union(link[0], link[1])
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("clustering aborted: %w", err)
	}
	return ds, nil
}

// buildGroup assembles one group from its members: canonical name, cluster
// confidence and the initial review decision.
func (g *Grouper) buildGroup(members []normalizedRow) Group {
	groupMembers := make([]GroupMember, len(members))
	for i, m := range members {
		groupMembers[i] = GroupMember{
			RowIndex:        m.RowIndex,
			OriginalPayee:   m.OriginalPayee,
			NormalizedPayee: m.normalizedPayee,
		}
	}

	confidence := clusterConfidence(members)
	decision := DecisionPending
	if confidence >= g.cfg.AutoAcceptThreshold {
		decision = DecisionAccept
	}

	return Group{
		ID:            uuid.New(),
		CanonicalName: selectCanonicalName(members),
		Confidence:    confidence,
		Members:       groupMembers,
		UserDecision:  decision,
	}
}

// resolveGroups runs the existing-payee match and override resolution for
// every group. Groups fan out across a bounded worker pool; lookups stay
// strictly sequential within a group so the first matching member wins.
func (g *Grouper) resolveGroups(ctx context.Context, groups []Group, existingPayees []Payee, workspaceID int64) error {
	payeesByID := make(map[int64]Payee, len(existingPayees))
	for _, p := range existingPayees {
		payeesByID[p.ID] = p
	}

	workerCount := g.cfg.LookupConcurrency
	if workerCount > len(groups) {
		workerCount = len(groups)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	jobs := make(chan int, workerCount)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				group := &groups[idx]
				g.matchExisting(group, existingPayees)
				g.applyOverrides(ctx, group, payeesByID, workspaceID)
			}
		}()
	}

	for idx := range groups {
		select {
		case jobs <- idx:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("group resolution aborted: %w", err)
	}
	return nil
}

// matchExisting ranks the group's canonical name against the workspace's
// known payees. The top candidate is attached when it clears the
// existing-match threshold; above the auto-accept threshold the stored DB
// name replaces the derived canonical name outright, since it is already
// clean.
func (g *Grouper) matchExisting(group *Group, existingPayees []Payee) {
	if g.matcher == nil || len(existingPayees) == 0 {
		return
	}

	matches := g.matcher.FindPotentialMatches(
		group.CanonicalName,
		existingPayees,
		g.cfg.ExistingMatchThreshold,
		g.cfg.MaxExistingMatches,
	)
	if len(matches) == 0 {
		return
	}

	top := matches[0]
	group.ExistingMatch = &ExistingMatch{
		ID:         top.Payee.ID,
		Name:       top.Payee.Name,
		Confidence: top.Score,
	}
	if top.Score >= g.cfg.AutoAcceptThreshold {
		group.CanonicalName = top.Payee.Name
		group.UserDecision = DecisionAccept
	}
}

// aggregateStats sums the per-group outcomes into batch statistics.
func aggregateStats(groups []Group) Stats {
	stats := Stats{UniqueGroups: len(groups)}
	for i := range groups {
		stats.TotalPayees += len(groups[i].Members)
		if groups[i].ExistingMatch != nil {
			stats.ExistingMatches++
		}
		if groups[i].UserDecision == DecisionAccept {
			stats.AutoAccepted++
		}
	}
	return stats
}

// AnalyzePayees resolves a batch with the default configuration, the default
// fuzzy matcher and no override stores attached.
func AnalyzePayees(ctx context.Context, rows []RowInput, existingPayees []Payee, workspaceID int64) (*GrouperResult, error) {
	g, err := New(DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	return g.AnalyzePayees(ctx, rows, existingPayees, workspaceID)
}
