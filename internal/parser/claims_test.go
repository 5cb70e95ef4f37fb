package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/rpattn/rximport/internal/domain"
)

func TestParseClaims(t *testing.T) {
	input := "Prescription Number,NDC,Paid Amount\n" +
		"100045,00071015523,210.35\n" +
		"\n" +
		"100046,00071015524\n"

	records, err := ParseClaims(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Row != 1 {
		t.Errorf("first row ordinal = %d, want 1", first.Row)
	}
	if got := first.Get("Paid Amount"); got != "210.35" {
		t.Errorf("Paid Amount = %q", got)
	}

	// The second data row is short; missing trailing cells read as empty.
	second := records[1]
	if second.Row != 2 {
		t.Errorf("second row ordinal = %d, want 2", second.Row)
	}
	if got := second.Get("Paid Amount"); got != "" {
		t.Errorf("padded cell = %q, want empty", got)
	}
	if second.Has("Paid Amount") {
		t.Error("padded cell must read as absent")
	}
}

func TestParseClaimsStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFPrescription Number,NDC\n100045,00071015523\n"
	records, err := ParseClaims(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].Get("Prescription Number"); got != "100045" {
		t.Errorf("Prescription Number = %q; BOM likely leaked into the first header", got)
	}
}

func TestParseClaimsSkipsLeadingBlankRows(t *testing.T) {
	input := ",,\n,,\nPrescription Number,NDC,Paid Amount\n100045,00071015523,210.35\n"
	records, err := ParseClaims(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].Get("NDC"); got != "00071015523" {
		t.Errorf("NDC = %q", got)
	}
}

func TestParseClaimsEmptyFile(t *testing.T) {
	_, err := ParseClaims(strings.NewReader(""), nil)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("err = %v, want ErrEmptyFile", err)
	}
}

func TestParseClaimsHeaderOnly(t *testing.T) {
	records, err := ParseClaims(strings.NewReader("Prescription Number,NDC\n"), nil)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestParseClaimsTrimsCells(t *testing.T) {
	input := "Prescription Number , NDC \n 100045 , 00071015523 \n"
	records, err := ParseClaims(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if got := records[0].Get("Prescription Number"); got != "100045" {
		t.Errorf("Prescription Number = %q", got)
	}
}

func TestParseClaimsReportsProgress(t *testing.T) {
	var b strings.Builder
	b.WriteString("Prescription Number\n")
	for i := 0; i < 600; i++ {
		b.WriteString("100045\n")
	}

	var checkpoints []domain.Progress
	records, err := ParseClaims(strings.NewReader(b.String()), func(p domain.Progress) {
		checkpoints = append(checkpoints, p)
	})
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if len(records) != 600 {
		t.Fatalf("got %d records, want 600", len(records))
	}
	if len(checkpoints) < 3 {
		t.Fatalf("got %d checkpoints, want at least 3", len(checkpoints))
	}
	final := checkpoints[len(checkpoints)-1]
	if final.Percentage != 100 || final.Current != 600 {
		t.Errorf("final checkpoint = %+v", final)
	}
}
