package cli

import (
	"fmt"
	"os"

	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/pipeline"
	"github.com/pharmtools/pharmaclass/internal/refstore"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	lookupUniProt  string
	lookupTargetID string
	lookupHGNC     string
	lookupHGNCID   string
	lookupGene     string
	lookupEC       string
	lookupName     string
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Classify a single identifier",
	Long: `Lookup resolves one identifier against the reference tables and
prints the full classification record as YAML.

Example:
  pharmaclass lookup --targets t.csv --families f.csv --uniprot Q11111
  pharmaclass lookup --targets t.csv --families f.csv --target-id 286
  pharmaclass lookup --targets t.csv --families f.csv --ec 2.7.10.2`,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&targetsPath, "targets", "", "target reference table (required)")
	lookupCmd.Flags().StringVar(&familiesPath, "families", "", "family reference table (required)")
	_ = lookupCmd.MarkFlagRequired("targets")
	_ = lookupCmd.MarkFlagRequired("families")

	lookupCmd.Flags().StringVar(&fieldSep, "sep", ",", "field delimiter")
	lookupCmd.Flags().StringVar(&fileEncoding, "encoding", "utf-8", "file encoding (IANA name)")
	lookupCmd.Flags().IntVar(&ecPrecision, "ec-precision", 2, "leading EC components that must match in the EC fallback")
	lookupCmd.Flags().IntVar(&maxDepth, "max-depth", 50, "maximum family chain depth")
	lookupCmd.Flags().StringVar(&chainSep, "chain-sep", ">", "separator for chain and path columns")

	lookupCmd.Flags().StringVar(&lookupUniProt, "uniprot", "", "UniProt accession")
	lookupCmd.Flags().StringVar(&lookupTargetID, "target-id", "", "target id (bypasses resolution)")
	lookupCmd.Flags().StringVar(&lookupHGNC, "hgnc", "", "HGNC name")
	lookupCmd.Flags().StringVar(&lookupHGNCID, "hgnc-id", "", "HGNC numeric id")
	lookupCmd.Flags().StringVar(&lookupGene, "gene", "", "gene name")
	lookupCmd.Flags().StringVar(&lookupEC, "ec", "", "EC number")
	lookupCmd.Flags().StringVar(&lookupName, "name", "", "target name or synonym")
}

func runLookup(cmd *cobra.Command, args []string) error {
	if lookupUniProt == "" && lookupTargetID == "" && lookupHGNC == "" &&
		lookupHGNCID == "" && lookupGene == "" && lookupEC == "" && lookupName == "" {
		return fmt.Errorf("provide at least one of --uniprot, --target-id, --hgnc, --hgnc-id, --gene, --ec, --name")
	}

	// Merged config (defaults < file < env), then explicit flags on top.
	cfg := loadConfig()
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
	if flags.Changed("max-depth") {
		cfg.Chain.MaxDepth = maxDepth
	}
	if flags.Changed("chain-sep") {
		cfg.Chain.Separator = chainSep
	}

	store, err := refstore.LoadFiles(targetsPath, familiesPath, cfg.IO.Separator, cfg.IO.Encoding)
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d targets, %d families\n", len(store.Targets()), len(store.Families()))
	}

	classifier := pipeline.NewClassifier(store, cfg)

	var record model.ClassificationRecord
	if lookupTargetID != "" {
		// --target-id skips the resolution strategies entirely.
		record = classifier.ClassifyTarget(lookupTargetID)
		if !record.Matched {
			return fmt.Errorf("target id %q not found", lookupTargetID)
		}
	} else {
		record = classifier.Classify(model.InputRow{
			Row:       1,
			UniProtID: lookupUniProt,
			HGNCName:  lookupHGNC,
			HGNCID:    lookupHGNCID,
			GeneName:  lookupGene,
			ECNumber:  lookupEC,
			Name:      lookupName,
		})
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Println(string(data))

	return nil
}
