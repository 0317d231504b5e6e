package model

// TargetRecord is a single row of the target reference table after
// load-time normalization. Identifier fields are free text; comparison
// casing is handled by the index builder, not stored here.
type TargetRecord struct {
	TargetID  string   `json:"target_id"`
	UniProtID string   `json:"uniprot_id,omitempty"`
	HGNCName  string   `json:"hgnc_name,omitempty"`
	HGNCID    string   `json:"hgnc_id,omitempty"`
	GeneName  string   `json:"gene_name,omitempty"`
	Name      string   `json:"name,omitempty"`
	Synonyms  []string `json:"synonyms,omitempty"`
	FamilyID  string   `json:"family_id,omitempty"`
	ECNumber  string   `json:"ec_number,omitempty"`
	Type      string   `json:"type,omitempty"`
	Class     string   `json:"class,omitempty"`
	Subclass  string   `json:"subclass,omitempty"`
}

// FamilyRecord is a node in the classification hierarchy.
// ParentFamilyID is empty at hierarchy roots.
type FamilyRecord struct {
	FamilyID       string `json:"family_id"`
	ParentFamilyID string `json:"parent_family_id,omitempty"`
	Name           string `json:"name,omitempty"`
	Type           string `json:"type,omitempty"`
	Class          string `json:"class,omitempty"`
	Subclass       string `json:"subclass,omitempty"`
	ECNumber       string `json:"ec_number,omitempty"`
}

// InputRow is one record to classify. All fields are optional; the
// resolver tries them in a fixed precedence order.
type InputRow struct {
	Row       int      `json:"row"` // 1-based position in the input
	UniProtID string   `json:"uniprot_id,omitempty"`
	HGNCName  string   `json:"hgnc_name,omitempty"`
	HGNCID    string   `json:"hgnc_id,omitempty"`
	GeneName  string   `json:"gene_name,omitempty"`
	Name      string   `json:"name,omitempty"`
	Synonyms  []string `json:"synonyms,omitempty"`
	ECNumber  string   `json:"ec_number,omitempty"`
}

// ResolutionMethod names the strategy that produced a classification.
type ResolutionMethod string

const (
	MethodTargetID    ResolutionMethod = "target_id"
	MethodUniProt     ResolutionMethod = "uniprot"
	MethodHGNCName    ResolutionMethod = "hgnc_name"
	MethodHGNCID      ResolutionMethod = "hgnc_id"
	MethodGeneName    ResolutionMethod = "gene_name"
	MethodSynonym     ResolutionMethod = "synonym"
	MethodECNumber    ResolutionMethod = "ec_number"
	MethodNameKeyword ResolutionMethod = "name_keyword"
	MethodECAmbiguous ResolutionMethod = "ec_ambiguous"
	MethodUnresolved  ResolutionMethod = "unresolved"
)

// ClassificationRecord is the per-row output of the pipeline. Exactly one
// is produced for every input row, matched or not.
type ClassificationRecord struct {
	Row              int              `json:"row"`
	Input            InputRow         `json:"input"`
	TargetID         string           `json:"target_id,omitempty"`
	TargetName       string           `json:"target_name,omitempty"`
	Type             string           `json:"type,omitempty"`
	Class            string           `json:"class,omitempty"`
	Subclass         string           `json:"subclass,omitempty"`
	FamilyID         string           `json:"family_id,omitempty"`
	FamilyChainIDs   []string         `json:"family_chain_ids,omitempty"`
	FamilyChainNames []string         `json:"family_chain_names,omitempty"`
	FullIDPath       string           `json:"full_id_path,omitempty"`
	FullNamePath     string           `json:"full_name_path,omitempty"`
	ResolutionMethod ResolutionMethod `json:"resolution_method"`
	Matched          bool             `json:"matched"`
	Truncated        bool             `json:"truncated,omitempty"`
	Error            string           `json:"error,omitempty"`
}
