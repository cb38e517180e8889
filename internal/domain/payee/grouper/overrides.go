package grouper

import (
	"context"
	"fmt"
)

// applyOverrides consults the persisted transfer-mapping and alias stores
// for a group, short-circuiting on the first hit. Transfer mappings outrank
// aliases: every member is checked against the transfer store, in original
// row order, before any alias lookup runs. A failing lookup never aborts
// the batch; the group keeps its computed state and carries a diagnostic.
func (g *Grouper) applyOverrides(ctx context.Context, group *Group, payeesByID map[int64]Payee, workspaceID int64) {
	// Already auto-accepted against an existing payee: only normalize the
	// canonical name so repeated imports stay byte-identical.
	if group.UserDecision == DecisionAccept &&
		group.ExistingMatch != nil &&
		group.ExistingMatch.Confidence >= g.cfg.AutoAcceptThreshold {
		group.CanonicalName = group.ExistingMatch.Name
		return
	}

	if g.transfers != nil && g.applyTransferOverride(ctx, group, workspaceID) {
		return
	}
	if g.aliases != nil {
		g.applyAliasOverride(ctx, group, payeesByID, workspaceID)
	}
}

// applyTransferOverride returns true when the group was resolved, either by
// a transfer hit or by a store failure that ends override processing.
func (g *Grouper) applyTransferOverride(ctx context.Context, group *Group, workspaceID int64) bool {
	for _, member := range group.Members {
		mapping, err := g.transfers.FindByRawString(ctx, member.OriginalPayee, workspaceID)
		if err != nil {
			g.noteLookupFailure(group, StageTransferLookup, member.OriginalPayee, err)
			return true
		}
		if mapping == nil {
			continue
		}

		group.UserDecision = DecisionAccept
		targetID := mapping.TargetAccountID
		group.TransferAccountID = &targetID

		if g.accounts != nil {
			name, err := g.accounts.NameByID(ctx, targetID)
			if err != nil {
				g.noteLookupFailure(group, StageAccountLookup, member.OriginalPayee, err)
			} else {
				group.TransferAccountName = name
			}
		}
		return true
	}
	return false
}

// applyAliasOverride checks members against the alias store in original row
// order. An alias forces accept only when its stored confidence clears the
// floor and its payee still resolves in the workspace.
func (g *Grouper) applyAliasOverride(ctx context.Context, group *Group, payeesByID map[int64]Payee, workspaceID int64) {
	for _, member := range group.Members {
		alias, err := g.aliases.FindByRawString(ctx, member.OriginalPayee, workspaceID)
		if err != nil {
			g.noteLookupFailure(group, StageAliasLookup, member.OriginalPayee, err)
			return
		}
		if alias == nil || alias.Confidence < aliasConfidenceFloor {
			continue
		}
		payee, ok := payeesByID[alias.PayeeID]
		if !ok {
			continue
		}

		group.UserDecision = DecisionAccept
		group.ExistingMatch = &ExistingMatch{
			ID:         payee.ID,
			Name:       payee.Name,
			Confidence: alias.Confidence,
		}
		group.CanonicalName = payee.Name
		return
	}
}

func (g *Grouper) noteLookupFailure(group *Group, stage LookupStage, raw string, err error) {
	group.Diagnostics = append(group.Diagnostics, Diagnostic{
		Stage:   stage,
		Message: fmt.Sprintf("%s failed for %q: %v", stage, raw, err),
	})
	g.logger.Warn("override lookup failed",
		"stage", string(stage),
		"rawPayee", raw,
		"error", err,
	)
}
