package tabio

import (
	"bytes"
	"strings"
	"testing"
)

func TestRead_NormalizesHeaders(t *testing.T) {
	input := "Target_ID, SwissProt ,gene_name\n286,Q11111,abl1\n"

	table, err := Read(strings.NewReader(input), ",", "utf-8")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := []string{"target_id", "swissprot", "gene_name"}
	for i, h := range want {
		if table.Headers[i] != h {
			t.Errorf("header %d: expected %q, got %q", i, h, table.Headers[i])
		}
	}

	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if got := table.Rows[0].Get("target_id"); got != "286" {
		t.Errorf("expected target_id 286, got %q", got)
	}
}

func TestRead_CustomSeparator(t *testing.T) {
	input := "a\tb\n1\t2\n"

	table, err := Read(strings.NewReader(input), "\t", "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := table.Rows[0].Get("b"); got != "2" {
		t.Errorf("expected 2, got %q", got)
	}
}

func TestRead_RaggedRowsDoNotFailTheFile(t *testing.T) {
	input := "target_id,gene_name,family_id\n286,ABL1\n287,ACE,F9,surplus\n288,GPR55,F5\n"

	table, err := Read(strings.NewReader(input), ",", "")
	if err != nil {
		t.Fatalf("Read failed on ragged rows: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}

	// Short row: missing trailing column reads as absent.
	if got := table.Rows[0].Get("family_id"); got != "" {
		t.Errorf("expected absent family_id, got %q", got)
	}
	if got := table.Rows[0].Get("gene_name"); got != "ABL1" {
		t.Errorf("expected ABL1, got %q", got)
	}

	// Long row: surplus cell is dropped, known columns keep their values.
	if got := table.Rows[1].Get("family_id"); got != "F9" {
		t.Errorf("expected F9, got %q", got)
	}

	// Well-formed row is unaffected.
	if got := table.Rows[2].Get("family_id"); got != "F5" {
		t.Errorf("expected F5, got %q", got)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), ",", "")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestRead_BadSeparator(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n"), ",,", "")
	if err == nil {
		t.Fatal("expected error for multi-character separator")
	}
}

func TestRead_UnknownEncoding(t *testing.T) {
	_, err := Read(strings.NewReader("a\n1\n"), ",", "no-such-encoding")
	if err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestRowGet_NormalizesMissingMarkers(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"plain value", "ABL1", "ABL1"},
		{"padded value", "  ABL1  ", "ABL1"},
		{"na marker", "#N/A", ""},
		{"short na marker", "N/A", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{"col": tt.cell}
			if got := row.Get("col"); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	columns := []string{"target_id", "gene_name"}
	rows := [][]string{
		{"286", "ABL1"},
		{"287", "ACE"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, ",", "utf-8", columns, rows); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	table, err := Read(&buf, ",", "utf-8")
	if err != nil {
		t.Fatalf("Read back failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[1].Get("gene_name"); got != "ACE" {
		t.Errorf("expected ACE, got %q", got)
	}
}

func TestWrite_Latin1Encoding(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, ";", "ISO-8859-1", []string{"name"}, [][]string{{"protéine"}})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// é must be the single Latin-1 byte 0xE9, not the UTF-8 pair.
	if !bytes.Contains(buf.Bytes(), []byte{0xE9}) {
		t.Error("expected Latin-1 encoded output")
	}

	table, err := Read(bytes.NewReader(buf.Bytes()), ";", "ISO-8859-1")
	if err != nil {
		t.Fatalf("Read back failed: %v", err)
	}
	if got := table.Rows[0].Get("name"); got != "protéine" {
		t.Errorf("round trip lost encoding: got %q", got)
	}
}
