package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/renjie/prism-units/pkg/adapters/catalog"
	"github.com/renjie/prism-units/pkg/adapters/factory"
	"github.com/renjie/prism-units/pkg/adapters/ingest"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services"
	"github.com/renjie/prism-units/pkg/core/services/rules"
)

type batchOptions struct {
	format      string
	rulesPath   string
	rulesRoot   string
	concurrency int
	strict      bool
	batchID     string
}

func newBatchCommand(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Convert a JSON or CSV file of conversion requests",
		Long: `Convert a list of requests read from FILE (or stdin when FILE is "-" or omitted).

JSON input is an array of {"id", "quantity", "from", "unit_of", "to"} objects.
CSV input needs the columns quantity, from, to and may add id and unit_of.
Temperatures below absolute zero are always rejected; --rules adds RANGE checks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.runBatch(cmd, path, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "", "input format: json or csv (default: from the file extension, json for stdin)")
	flags.StringVar(&opts.rulesPath, "rules", "", "YAML or JSON file with RANGE check rules")
	flags.StringVar(&opts.rulesRoot, "rules-root", "", "dot path of the rule list inside the rules file")
	flags.IntVar(&opts.concurrency, "concurrency", 100, "maximum number of requests converted concurrently")
	flags.BoolVar(&opts.strict, "strict", false, "fail when any request is skipped or rejected")
	flags.StringVar(&opts.batchID, "batch-id", "", "batch identifier recorded on rejected requests")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, path string, opts *batchOptions) error {
	in, format, err := openBatchInput(cmd, path, opts.format)
	if err != nil {
		return err
	}
	defer in.Close()

	checks := []ports.RequestRule{rules.NewAbsoluteZeroRule()}
	if opts.rulesPath != "" {
		configured, err := loadRules(opts.rulesPath, opts.rulesRoot)
		if err != nil {
			return err
		}
		checks = append(checks, configured...)
	}

	// 1. 导入请求
	var requests []domain.ConversionRequest
	collect := func(_ context.Context, batch []domain.ConversionRequest) error {
		requests = append(requests, batch...)
		return nil
	}
	var ingestor ports.RequestIngestor
	switch format {
	case "json":
		ingestor = ingest.NewJsonRequestIngestor(collect)
	case "csv":
		ingestor = ingest.NewCsvRequestIngestor(collect)
	default:
		return fmt.Errorf("unsupported batch format %q (want json or csv)", format)
	}

	ctx := domain.NewContext(cmd.Context(), domain.BatchContext{BatchID: opts.batchID, Operator: "cli"})
	ingested, err := ingestor.IngestBatch(ctx, in, format)
	if err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}
	for _, msg := range ingested.Errors {
		a.logger.Warn("request skipped", "error", msg)
	}

	// 2. 换算
	batch := services.NewBatchConverter(a.converter,
		services.WithRequestRules(checks...),
		services.WithConcurrencyLimit(opts.concurrency),
		services.WithBatchLogger(a.logger),
	)
	results, rejected, err := batch.ConvertAll(ctx, requests)
	if err != nil {
		return err
	}

	// 3. 输出
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUANTITY\tFROM\tTO\tRESULT\tQUALITY")
	for _, r := range results {
		q := r.Request
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", q.ID, q.Quantity, q.From, q.To, r.Value, r.Quality)
	}
	for _, r := range rejected {
		q := r.Request
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t-\tREJECTED: %s\n", q.ID, q.Quantity, q.From, q.To, r.Reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if opts.strict && (ingested.Failed > 0 || len(rejected) > 0) {
		return fmt.Errorf("%d requests skipped, %d rejected", ingested.Failed, len(rejected))
	}
	return nil
}

func openBatchInput(cmd *cobra.Command, path, format string) (io.ReadCloser, string, error) {
	format = strings.ToLower(format)
	if path == "-" {
		if format == "" {
			format = "json"
		}
		return io.NopCloser(cmd.InOrStdin()), format, nil
	}

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open requests: %w", err)
	}
	return f, format, nil
}

func loadRules(path, root string) ([]ports.RequestRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	configs, err := catalog.DecodeRules(data, root)
	if err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return factory.GetRuleFactory().CreateRules(configs)
}
