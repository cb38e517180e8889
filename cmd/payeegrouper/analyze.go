package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline/payee-resolver/internal/domain/payee/grouper"
	"github.com/ledgerline/payee-resolver/pkg/config"
)

// statementRow is one line of the preview CSV. Only payee is required.
type statementRow struct {
	Payee         string `csv:"payee"`
	OriginalPayee string `csv:"original_payee"`
	Amount        string `csv:"amount"`
}

// payeeRow seeds the workspace's known payees.
type payeeRow struct {
	ID   int64  `csv:"id"`
	Name string `csv:"name"`
}

// aliasRow seeds the alias store fixture.
type aliasRow struct {
	RawString  string  `csv:"raw_string"`
	PayeeID    int64   `csv:"payee_id"`
	Confidence float64 `csv:"confidence"`
}

// transferRow seeds the transfer-mapping store fixture.
type transferRow struct {
	RawString   string `csv:"raw_string"`
	AccountID   int64  `csv:"account_id"`
	AccountName string `csv:"account_name"`
}

func newAnalyzeCmd() *cobra.Command {
	var (
		inputPath     string
		payeesPath    string
		aliasesPath   string
		transfersPath string
		workspaceID   int64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Group the payees of a statement CSV and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Logging.Level)
			g, err := grouper.New(cfg.Grouper.ToGrouperConfig(), logger)
			if err != nil {
				return err
			}

			rows, amounts, err := loadStatement(inputPath)
			if err != nil {
				return err
			}

			var existing []grouper.Payee
			if payeesPath != "" {
				if existing, err = loadPayees(payeesPath); err != nil {
					return err
				}
			}
			if aliasesPath != "" {
				aliases, err := loadAliases(aliasesPath, workspaceID)
				if err != nil {
					return err
				}
				g = g.WithAliasStore(aliases)
			}
			if transfersPath != "" {
				transfers, accounts, err := loadTransfers(transfersPath, workspaceID)
				if err != nil {
					return err
				}
				g = g.WithTransferStore(transfers).WithAccountLookup(accounts)
			}

			result, err := g.AnalyzePayees(cmd.Context(), rows, existing, workspaceID)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), result, amounts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "statement CSV with payee[,original_payee][,amount] columns")
	cmd.Flags().StringVar(&payeesPath, "payees", "", "CSV of known payees (id,name)")
	cmd.Flags().StringVar(&aliasesPath, "aliases", "", "CSV of confirmed aliases (raw_string,payee_id,confidence)")
	cmd.Flags().StringVar(&transfersPath, "transfers", "", "CSV of confirmed transfer mappings (raw_string,account_id,account_name)")
	cmd.Flags().Int64Var(&workspaceID, "workspace", 1, "workspace id for store lookups")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadStatement reads the preview CSV into grouper rows, keeping per-row
// amounts for the group totals.
func loadStatement(path string) ([]grouper.RowInput, map[int]decimal.Decimal, error) {
	var raw []*statementRow
	if err := unmarshalCSVFile(path, &raw); err != nil {
		return nil, nil, fmt.Errorf("reading statement %s: %w", path, err)
	}

	rows := make([]grouper.RowInput, 0, len(raw))
	amounts := make(map[int]decimal.Decimal)
	for i, r := range raw {
		rows = append(rows, grouper.RowInput{
			RowIndex:      i,
			PayeeName:     r.Payee,
			OriginalPayee: r.OriginalPayee,
		})
		if r.Amount == "" {
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid amount %q: %w", i+1, r.Amount, err)
		}
		amounts[i] = amount
	}
	return rows, amounts, nil
}

func loadPayees(path string) ([]grouper.Payee, error) {
	var raw []*payeeRow
	if err := unmarshalCSVFile(path, &raw); err != nil {
		return nil, fmt.Errorf("reading payees %s: %w", path, err)
	}

	payees := make([]grouper.Payee, 0, len(raw))
	for _, r := range raw {
		payees = append(payees, grouper.Payee{ID: r.ID, Name: r.Name})
	}
	return payees, nil
}

func loadAliases(path string, workspaceID int64) (*grouper.MemoryAliasStore, error) {
	var raw []*aliasRow
	if err := unmarshalCSVFile(path, &raw); err != nil {
		return nil, fmt.Errorf("reading aliases %s: %w", path, err)
	}

	aliases := grouper.NewMemoryAliasStore()
	for _, r := range raw {
		aliases.Add(workspaceID, r.RawString, r.PayeeID, r.Confidence)
	}
	return aliases, nil
}

func loadTransfers(path string, workspaceID int64) (*grouper.MemoryTransferStore, *grouper.MemoryAccountLookup, error) {
	var raw []*transferRow
	if err := unmarshalCSVFile(path, &raw); err != nil {
		return nil, nil, fmt.Errorf("reading transfers %s: %w", path, err)
	}

	transfers := grouper.NewMemoryTransferStore()
	accounts := grouper.NewMemoryAccountLookup()
	for _, r := range raw {
		transfers.Add(workspaceID, r.RawString, r.AccountID)
		if r.AccountName != "" {
			accounts.Add(r.AccountID, r.AccountName)
		}
	}
	return transfers, accounts, nil
}

func unmarshalCSVFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.UnmarshalFile(f, out)
}

func printResult(w io.Writer, result *grouper.GrouperResult, amounts map[int]decimal.Decimal) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tMEMBERS\tCONFIDENCE\tDECISION\tTOTAL\tNOTES")

	for i := range result.Groups {
		group := &result.Groups[i]

		total := decimal.Zero
		for _, m := range group.Members {
			if amount, ok := amounts[m.RowIndex]; ok {
				total = total.Add(amount)
			}
		}

		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\t%s\t%s\n",
			group.CanonicalName,
			len(group.Members),
			group.Confidence,
			group.UserDecision,
			total.StringFixed(2),
			groupNotes(group),
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d payees in %d groups, %d matched existing, %d auto-accepted\n",
		result.Stats.TotalPayees,
		result.Stats.UniqueGroups,
		result.Stats.ExistingMatches,
		result.Stats.AutoAccepted,
	)
}

func groupNotes(group *grouper.Group) string {
	var notes []string
	if group.ExistingMatch != nil {
		notes = append(notes, fmt.Sprintf("matches %s (%.2f)", group.ExistingMatch.Name, group.ExistingMatch.Confidence))
	}
	if group.TransferAccountID != nil {
		name := group.TransferAccountName
		if name == "" {
			name = fmt.Sprintf("account %d", *group.TransferAccountID)
		}
		notes = append(notes, "transfer to "+name)
	}
	for _, d := range group.Diagnostics {
		notes = append(notes, "lookup failed: "+string(d.Stage))
	}
	return strings.Join(notes, "; ")
}
