// Package cli implements the stockframe command line.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock_frame/internal/app/di"
	"stock_frame/internal/feature/challenge/usecase"
	symbolentity "stock_frame/internal/feature/symbollist/domain/entity"
	symbolusecase "stock_frame/internal/feature/symbollist/usecase"
	"stock_frame/internal/shared/ratelimiter"
)

// ErrChecksFailed is returned by the check command when any check fails.
var ErrChecksFailed = errors.New("challenge checks failed")

// Deps supplies the repositories and data sources to the commands.
// Results and Symbols are called lazily so that commands such as --help never open the database.
type Deps struct {
	Results func() (usecase.ResultRepository, error)
	Symbols func() (symbolusecase.SymbolRepository, error)
	Source  func(opts di.SourceOptions) usecase.FrameSource
}

// symbolUsecase opens the symbol catalogue.
func (d Deps) symbolUsecase() (*symbolusecase.SymbolUsecase, error) {
	if d.Symbols == nil {
		return nil, errors.New("symbol catalogue is not configured")
	}
	repo, err := d.Symbols()
	if err != nil {
		return nil, err
	}
	return symbolusecase.NewSymbolUsecase(repo), nil
}

// NewRootCmd creates the root command
func NewRootCmd(deps Deps) *cobra.Command {
	if deps.Source == nil {
		deps.Source = di.NewFrameSource
	}

	rootCmd := &cobra.Command{
		Use:   "stockframe",
		Short: "Prepare daily price tables and check their shape",
		Long: `stockframe loads a daily OHLC price table for a stock symbol, indexes it by date,
records the table's shape as a named challenge result and checks that result.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.AddCommand(newPrepareCmd(deps))
	rootCmd.AddCommand(newCheckCmd(deps))
	rootCmd.AddCommand(newSymbolsCmd(deps))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newPrepareCmd creates the prepare command
func newPrepareCmd(deps Deps) *cobra.Command {
	var (
		challenge string
		symbol    string
		symbols   []string
		csvFile   string
		csvDir    string
		perMinute int
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Load a price table, index it by date and save its shape",
		Long: `Load a price table from a CSV file, a directory of <symbol>.csv files or the
Twelve Data API, convert its 'date' column to timestamps, index by it and save the result.
Without --symbol, --symbols or --csv every active symbol in the catalogue is prepared,
each saved as <challenge>_<symbol>.
Example: stockframe prepare --challenge apple --symbol AAPL --csv data/apple.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := deps.Results()
			if err != nil {
				return err
			}
			src := deps.Source(di.SourceOptions{CSVFile: csvFile, CSVDir: csvDir})
			limiter := ratelimiter.NewRateLimiter(perMinute, time.Minute)
			uc := usecase.NewPrepareUsecase(src, repo, limiter)

			out := cmd.OutOrStdout()
			if len(symbols) == 0 && symbol == "" && csvFile == "" {
				suc, err := deps.symbolUsecase()
				if err != nil {
					return err
				}
				codes, err := suc.ActiveCodes(cmd.Context())
				if err != nil {
					return fmt.Errorf("%w: register symbols or pass --symbol/--symbols", err)
				}
				slog.Info("preparing catalogue symbols", "count", len(codes))
				symbols = codes
			}
			if len(symbols) > 0 {
				results, err := uc.PrepareAll(cmd.Context(), challenge, symbols)
				for _, r := range results {
					renderResult(out, r)
				}
				return err
			}

			if symbol == "" {
				// a single CSV file is read whatever the symbol; name it after the file for logs
				symbol = strings.TrimSuffix(filepath.Base(csvFile), filepath.Ext(csvFile))
			}
			r, err := uc.Prepare(cmd.Context(), challenge, strings.ToUpper(symbol))
			if err != nil {
				return err
			}
			renderResult(out, r)
			return nil
		},
	}

	cmd.Flags().StringVar(&challenge, "challenge", "apple", "Challenge name the result is saved under (prefix with --symbols)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Stock ticker symbol (default: active catalogue symbols)")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "Prepare several symbols, saved as <challenge>_<symbol>")
	cmd.Flags().StringVar(&csvFile, "csv", "", "CSV file to read instead of the API")
	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "Directory of <symbol>.csv files to read instead of the API")
	cmd.Flags().IntVar(&perMinute, "rate-limit", 8, "Maximum source requests per minute (0 disables)")
	cmd.MarkFlagsMutuallyExclusive("csv", "csv-dir")
	cmd.MarkFlagsMutuallyExclusive("symbol", "symbols")

	return cmd
}

// newCheckCmd creates the check command
func newCheckCmd(deps Deps) *cobra.Command {
	var challenge string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a saved challenge result",
		Long: `Run the index-name, index-dtype and required-column checks against a saved result.
The command exits non-zero when any check fails.
Example: stockframe check --challenge apple`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := deps.Results()
			if err != nil {
				return err
			}
			rep, err := usecase.NewCheckUsecase(repo, nil).Check(cmd.Context(), challenge)
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), rep)
			if !rep.Passed() {
				return fmt.Errorf("%w: %d of %d", ErrChecksFailed, rep.Failed(), len(rep.Cases))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&challenge, "challenge", "apple", "Challenge name to check")

	return cmd
}

// newSymbolsCmd creates the symbols command
func newSymbolsCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the catalogue of symbols prepared by default",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active symbols in preparation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suc, err := deps.symbolUsecase()
			if err != nil {
				return err
			}
			list, err := suc.ListActiveSymbols(cmd.Context())
			if err != nil {
				return err
			}
			renderSymbols(cmd.OutOrStdout(), list)
			return nil
		},
	})

	var (
		name     string
		exchange string
		sortKey  int
	)
	add := &cobra.Command{
		Use:     "add CODE",
		Short:   "Register or reactivate a symbol",
		Example: "stockframe symbols add AAPL --name \"Apple Inc.\" --exchange NASDAQ --sort-key 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suc, err := deps.symbolUsecase()
			if err != nil {
				return err
			}
			s, err := suc.Register(cmd.Context(), symbolentity.Symbol{
				Code:     args[0],
				Name:     name,
				Exchange: exchange,
				SortKey:  sortKey,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", s.Code)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Display name")
	add.Flags().StringVar(&exchange, "exchange", "", "Listing exchange")
	add.Flags().IntVar(&sortKey, "sort-key", 0, "Preparation order (ascending)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove CODE",
		Short: "Deactivate a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suc, err := deps.symbolUsecase()
			if err != nil {
				return err
			}
			if err := suc.Deactivate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", strings.ToUpper(strings.TrimSpace(args[0])))
			return nil
		},
	})

	return cmd
}
