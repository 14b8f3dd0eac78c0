package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"
	l3_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l3"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const topSignalsShown = 5

type scanOptions struct {
	tickers         string
	start           string
	end             string
	configPath      string
	output          string
	jsonOutput      string
	dataSource      string
	csvDir          string
	scoreExpression string
}

// NewScanCommand builds the `scan` command. Tickers are read from in when
// --tickers is not given.
func NewScanCommand(in io.Reader, out io.Writer) *cobra.Command {
	opts := &scanOptions{}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan every pair of tickers for spreads at a historical extreme",
		Long: `Fetch adjusted closes for each ticker, resample to weekly, and flag every
pair whose price spread sits at its high or low for the window.

Examples:
  pairscan scan --tickers PFF,PGX,PSK
  pairscan scan --tickers BAC-PL,WFC-PL --start 2020-01-01 --end 2024-12-31
  pairscan scan --data-source csv --csv-dir ./prices --json-output scan.json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, in, out)
		},
	}

	scanCmd.Flags().StringVar(&opts.tickers, "tickers", "", "Comma separated tickers (prompted when empty)")
	scanCmd.Flags().StringVar(&opts.start, "start", "", "Start date YYYY-MM-DD (default five years before end)")
	scanCmd.Flags().StringVar(&opts.end, "end", "", "End date YYYY-MM-DD (default today)")
	scanCmd.Flags().StringVar(&opts.configPath, "config", util.DefaultConfigPath(), "Config file (.json or .yaml)")
	scanCmd.Flags().StringVar(&opts.output, "output", "", "Text report path")
	scanCmd.Flags().StringVar(&opts.jsonOutput, "json-output", "", "Optional JSON scan result path")
	scanCmd.Flags().StringVar(&opts.dataSource, "data-source", "", "Price source (yahoo|alpaca|csv)")
	scanCmd.Flags().StringVar(&opts.csvDir, "csv-dir", "", "Directory of <SYMBOL>.csv files for the csv source")
	scanCmd.Flags().StringVar(&opts.scoreExpression, "score-expression", "", "Custom score, e.g. \"abs(correlation) * 2 + reward / (risk + 1)\"")

	return scanCmd
}

func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pairscan",
		Short: "Pairs trading signal scanner",
	}
	rootCmd.AddCommand(NewScanCommand(in, out))
	return rootCmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, in io.Reader, out io.Writer) error {
	cfg, err := util.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFile = opts.output
	}
	if flags.Changed("json-output") {
		cfg.JsonOutputFile = opts.jsonOutput
	}
	if flags.Changed("data-source") {
		cfg.DataSource = strings.ToLower(opts.dataSource)
	}
	if flags.Changed("csv-dir") {
		cfg.CsvDir = opts.csvDir
	}
	if flags.Changed("score-expression") {
		cfg.ScoreExpression = opts.scoreExpression
	}

	tickersInput := opts.tickers
	if tickersInput == "" {
		fmt.Fprint(out, "Enter tickers separated by commas: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read tickers: %w", err)
		}
		tickersInput = line
	}
	tickers := util.ParseTickers(tickersInput)
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers provided")
	}

	start, end, err := util.ParseDateRange(opts.start, opts.end, time.Now())
	if err != nil {
		return err
	}

	handler, err := InitializeDependencies(*cfg, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.NewContext(ctx, zap.S())
	profile, endProfile := domain.NewProfile()
	defer endProfile()
	ctx = domain.NewCtxWithProfile(ctx, profile)

	result, err := handler.Run(ctx, l3_service.PairScanInput{
		Tickers:         tickers,
		Start:           start,
		End:             end,
		ScoreExpression: cfg.ScoreExpression,
	})
	if result != nil {
		printSummary(out, result)
	}
	return err
}

func printSummary(out io.Writer, result *domain.ScanResult) {
	if len(result.PairSignals) == 0 {
		fmt.Fprintln(out, "No signals found.")
		return
	}

	fmt.Fprintf(out, "\nFound %d signals.\n", len(result.PairSignals))
	fmt.Fprintln(out, "Top 5:")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for i, s := range result.PairSignals {
		if i == topSignalsShown {
			break
		}
		fmt.Fprintf(out, "%d. %s & %s - Score: %.2f\n", i+1, s.Ticker1, s.Ticker2, s.TotalScore)
		fmt.Fprintf(out, "   Signal: %s, Corr: %.2f, Z: %.2f\n", s.SignalType, s.Correlation, s.ZScore)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, result.PositionSummaryText)
}
