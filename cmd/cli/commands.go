package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
	"github.com/iho/gofintrack/internal/infrastructure/config"
)

var reportSections = []string{"overview", "categories", "monthly", "cashflow", "heatmap", "insights"}

// loadConfig is replaced in tests.
var loadConfig = func() (*config.Config, error) { return config.Load() }

func tokenCmd() *cobra.Command {
	var (
		ownerID string
		name    string
		secret  string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token for an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				secret = cfg.JWTSecret
				if ttl == 0 {
					ttl = cfg.JWTExpiration
				}
			}
			if secret == "" {
				return errors.New("no signing secret: pass --secret or set JWT_SECRET")
			}
			if ttl == 0 {
				ttl = 24 * time.Hour
			}

			token, err := auth.NewJWTManager(secret, ttl).Generate(&domain.Owner{ID: ownerID, Name: name})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID to put in the token subject")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (defaults to JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRATION)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func reportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "report [section]",
		Short:     "Show the analytics report or one of its sections",
		ValidArgs: reportSections,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/analytics"
			if len(args) == 1 {
				path += "/" + args[0]
			}

			body, err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, nil, nil)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}

func transactionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Transaction operations",
	}

	cmd.AddCommand(
		listTransactionsCmd(opts),
		addTransactionCmd(opts),
		deleteTransactionCmd(opts),
	)

	return cmd
}

func listTransactionsCmd(opts *rootOptions) *cobra.Command {
	var (
		search, txType, category, sort string
		asJSON                         bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions grouped by recency",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			for k, v := range map[string]string{"search": search, "type": txType, "category": category, "sort": sort} {
				if v != "" {
					query.Set(k, v)
				}
			}

			body, err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/transactions", query, nil, nil)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), body)
			}

			var resp dto.BrowseResponse
			if err := decode(body, &resp); err != nil {
				return err
			}
			return printSections(cmd.OutOrStdout(), &resp)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match description, category or amount")
	cmd.Flags().StringVar(&txType, "type", "", "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&sort, "sort", "", "newest, oldest, highest or lowest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

func addTransactionCmd(opts *rootOptions) *cobra.Command {
	var (
		req            dto.CreateTransactionRequest
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			if idempotencyKey == "" {
				idempotencyKey = ulid.Make().String()
			}

			header := http.Header{}
			header.Set("Idempotency-Key", idempotencyKey)

			body, err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions", nil, req, header)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().StringVar(&req.Type, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Amount as a decimal string")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&req.PaymentMethod, "payment-method", "", "Card, Cash or UPI")
	cmd.Flags().StringVar(&req.Note, "note", "", "Free-form note")
	cmd.Flags().StringVar(&req.Date, "date", "", "YYYY-MM-DD or RFC 3339 (defaults to today)")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key (generated when empty)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteTransactionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.client().do(cmd.Context(), http.MethodDelete, "/api/v1/transactions/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}

func printSections(w io.Writer, resp *dto.BrowseResponse) error {
	if resp.Count == 0 {
		_, err := fmt.Fprintln(w, "no transactions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, section := range resp.Sections {
		fmt.Fprintf(tw, "%s\n", section.Title)
		for _, t := range section.Transactions {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				t.Date.Format(dto.DateLayout),
				t.Type,
				t.Amount.StringFixed(2),
				t.Category,
				truncate(t.Description, 32),
			)
		}
	}
	fmt.Fprintf(tw, "%d transactions\n", resp.Count)

	return tw.Flush()
}
