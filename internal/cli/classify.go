package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/pharmtools/pharmaclass/internal/pipeline"
	"github.com/pharmtools/pharmaclass/internal/refstore"
	"github.com/pharmtools/pharmaclass/internal/tabio"
	"github.com/pharmtools/pharmaclass/internal/worker"
	"github.com/spf13/cobra"
)

var (
	targetsPath   string
	familiesPath  string
	inputPath     string
	outputPath    string
	fieldSep      string
	fileEncoding  string
	ecPrecision   int
	maxDepth      int
	chainSep      string
	workers       int
	nameHeuristic bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a batch of target identifiers",
	Long: `Classify resolves every row of an input table against the target
and family reference tables and writes one output row per input row:
- Load and validate the two reference tables
- Build reverse-lookup indices (UniProt, HGNC name/id, gene, synonym)
- Resolve each row via the ordered strategy list, EC fallback last
- Walk the family hierarchy to the root for each resolved row
- Report unresolved rows in-band; a bad row never aborts the batch

Example:
  pharmaclass classify --targets targets.csv --families families.csv --input rows.csv --output out.csv
  pharmaclass classify --targets t.csv --families f.csv --input rows.tsv --output out.tsv --sep $'\t'
  pharmaclass classify --targets t.csv --families f.csv --input rows.csv --output out.csv --workers 8`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&targetsPath, "targets", "", "target reference table (required)")
	classifyCmd.Flags().StringVar(&familiesPath, "families", "", "family reference table (required)")
	classifyCmd.Flags().StringVar(&inputPath, "input", "", "input table of rows to classify (required)")
	classifyCmd.Flags().StringVar(&outputPath, "output", "", "output table path (required)")
	_ = classifyCmd.MarkFlagRequired("targets")
	_ = classifyCmd.MarkFlagRequired("families")
	_ = classifyCmd.MarkFlagRequired("input")
	_ = classifyCmd.MarkFlagRequired("output")

	// I/O flags
	classifyCmd.Flags().StringVar(&fieldSep, "sep", ",", "field delimiter")
	classifyCmd.Flags().StringVar(&fileEncoding, "encoding", "utf-8", "file encoding (IANA name)")

	// Resolution flags
	classifyCmd.Flags().IntVar(&ecPrecision, "ec-precision", 2, "leading EC components that must match in the EC fallback")
	classifyCmd.Flags().BoolVar(&nameHeuristic, "name-heuristic", false, "enable keyword-based type guess as a last resort")

	// Chain flags
	classifyCmd.Flags().IntVar(&maxDepth, "max-depth", 50, "maximum family chain depth")
	classifyCmd.Flags().StringVar(&chainSep, "chain-sep", ">", "separator for chain and path columns")

	// Concurrency flags
	classifyCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (0 = one per CPU)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Merged config (defaults < file < env), then explicit flags on top.
	cfg := loadConfig()
	cfg.Reference.TargetsPath = targetsPath
	cfg.Reference.FamiliesPath = familiesPath
	flags := cmd.Flags()
	if flags.Changed("sep") {
		cfg.IO.Separator = fieldSep
	}
	if flags.Changed("encoding") {
		cfg.IO.Encoding = fileEncoding
	}
	if flags.Changed("ec-precision") {
		cfg.Resolver.ECPrecision = ecPrecision
	}
	if flags.Changed("name-heuristic") {
		cfg.Resolver.NameHeuristic = nameHeuristic
	}
	if flags.Changed("max-depth") {
		cfg.Chain.MaxDepth = maxDepth
	}
	if flags.Changed("chain-sep") {
		cfg.Chain.Separator = chainSep
	}
	if flags.Changed("workers") {
		cfg.Concurrency.Workers = workers
	}
	if cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = runtime.NumCPU()
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Pharmaclass Batch Classification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Targets:    %s\n", targetsPath)
	fmt.Fprintf(os.Stderr, "  Families:   %s\n", familiesPath)
	fmt.Fprintf(os.Stderr, "  Input:      %s\n", inputPath)
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outputPath)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	// Load reference tables; schema and key errors are fatal here,
	// before any resolution starts.
	fmt.Fprintf(os.Stderr, "⚙️  Loading reference tables...\n")
	store, err := refstore.LoadFiles(targetsPath, familiesPath, cfg.IO.Separator, cfg.IO.Encoding)
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d targets, %d families\n", len(store.Targets()), len(store.Families()))

	classifier := pipeline.NewClassifier(store, cfg)

	if cfg.Output.Verbose {
		for name, size := range classifier.Indices().Sizes() {
			fmt.Fprintf(os.Stderr, "  index %-10s %d entries\n", name, size)
		}
	}
	for _, w := range classifier.Indices().Warnings() {
		fmt.Fprintf(os.Stderr, "⚠ synonym %q on targets %s and %s; keeping %s\n",
			w.Synonym, w.KeptTargetID, w.DroppedTargetID, w.KeptTargetID)
	}

	// Read input rows
	table, err := tabio.ReadFile(inputPath, cfg.IO.Separator, cfg.IO.Encoding)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	rows := pipeline.RowsFromTable(table)
	fmt.Fprintf(os.Stderr, "✓ Loaded %d input rows\n", len(rows))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Classifying with %d workers...\n", cfg.Concurrency.Workers)

	runner := worker.NewBatchRunner(classifier, cfg.Concurrency.Workers)
	records := runner.Run(ctx, rows)

	// Write output
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		out = append(out, pipeline.OutputRow(rec, cfg.Chain.Separator))
	}
	if err := tabio.WriteFile(outputPath, cfg.IO.Separator, cfg.IO.Encoding, pipeline.OutputColumns, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	// Summary
	matched := 0
	truncated := 0
	for _, rec := range records {
		if rec.Matched {
			matched++
		}
		if rec.Truncated {
			truncated++
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Classification Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:      %d rows\n", len(records))
	fmt.Fprintf(os.Stderr, "  Matched:    %d\n", matched)
	fmt.Fprintf(os.Stderr, "  Unmatched:  %d\n", len(records)-matched)
	if truncated > 0 {
		fmt.Fprintf(os.Stderr, "  Truncated:  %d chains\n", truncated)
	}
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outputPath)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
