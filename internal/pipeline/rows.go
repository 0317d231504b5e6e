package pipeline

import (
	"strconv"
	"strings"

	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/refstore"
	"github.com/pharmtools/pharmaclass/internal/tabio"
)

// Identifier columns recognized on input tables, by normalized header.
// Extra columns are ignored; at least one identifier column should be
// present for any row to resolve.
const (
	colUniProt  = "uniprot_id"
	colHGNCName = "hgnc_name"
	colHGNCID   = "hgnc_id"
	colGeneName = "gene_name"
	colName     = "name"
	colSynonyms = "synonyms"
	colECNumber = "ec_number"
)

// RowsFromTable maps a parsed input table to input rows. Row numbers
// are 1-based positions in the table.
func RowsFromTable(t *tabio.Table) []model.InputRow {
	rows := make([]model.InputRow, 0, len(t.Rows))
	for i, raw := range t.Rows {
		rows = append(rows, model.InputRow{
			Row:       i + 1,
			UniProtID: raw.Get(colUniProt),
			HGNCName:  raw.Get(colHGNCName),
			HGNCID:    raw.Get(colHGNCID),
			GeneName:  raw.Get(colGeneName),
			Name:      raw.Get(colName),
			Synonyms:  refstore.SplitSynonyms(raw.Get(colSynonyms)),
			ECNumber:  raw.Get(colECNumber),
		})
	}
	return rows
}

// OutputColumns is the column order of the classification output table.
var OutputColumns = []string{
	"row",
	"uniprot_id",
	"hgnc_name",
	"hgnc_id",
	"gene_name",
	"ec_number",
	"target_id",
	"target_name",
	"type",
	"class",
	"subclass",
	"family_id",
	"family_chain_ids",
	"family_chain_names",
	"full_id_path",
	"full_name_path",
	"resolution_method",
	"matched",
	"truncated",
	"error",
}

// OutputRow serializes one classification record for the output table.
// The chain columns reuse the configured separator so the list columns
// and the path columns stay consistent.
func OutputRow(rec model.ClassificationRecord, chainSep string) []string {
	return []string{
		strconv.Itoa(rec.Row),
		rec.Input.UniProtID,
		rec.Input.HGNCName,
		rec.Input.HGNCID,
		rec.Input.GeneName,
		rec.Input.ECNumber,
		rec.TargetID,
		rec.TargetName,
		rec.Type,
		rec.Class,
		rec.Subclass,
		rec.FamilyID,
		strings.Join(rec.FamilyChainIDs, chainSep),
		strings.Join(rec.FamilyChainNames, chainSep),
		rec.FullIDPath,
		rec.FullNamePath,
		string(rec.ResolutionMethod),
		strconv.FormatBool(rec.Matched),
		strconv.FormatBool(rec.Truncated),
		rec.Error,
	}
}
