package models

import "testing"

func sampleFilingTable() [][]FilingRecord {
	return [][]FilingRecord{
		{
			{ReturnType: "GSTR3B", TaxPeriod: "April", DateOfFiling: "18/05/2023", Status: "Filed"},
			{ReturnType: "GSTR3B", TaxPeriod: "May", DateOfFiling: "19/06/2023", Status: "Filed"},
			{ReturnType: "GSTR3B", TaxPeriod: "June", DateOfFiling: "", Status: "Not Filed"},
		},
		{
			{ReturnType: "GSTR1", TaxPeriod: "April", DateOfFiling: "10/05/2023", Status: "Filed"},
		},
	}
}

func TestAllFilings(t *testing.T) {
	b := &BusinessRecord{FilingStatus: sampleFilingTable()}
	all := b.AllFilings()
	if len(all) != 4 {
		t.Errorf("Expected 4 filings, got %d", len(all))
	}

	empty := &BusinessRecord{}
	if got := empty.AllFilings(); len(got) != 0 {
		t.Errorf("Expected no filings for empty record, got %d", len(got))
	}
}

func TestFiledCount(t *testing.T) {
	b := &BusinessRecord{FilingStatus: sampleFilingTable()}
	if got := b.FiledCount(); got != 3 {
		t.Errorf("Expected 3 filed returns, got %d", got)
	}
}

func TestGroupFilingsByReturnType(t *testing.T) {
	b := &BusinessRecord{FilingStatus: sampleFilingTable()}
	groups := b.GroupFilingsByReturnType()

	if len(groups) != 2 {
		t.Fatalf("Expected 2 return types, got %d", len(groups))
	}
	gstr3b := groups["GSTR3B"]
	if len(gstr3b) != 3 {
		t.Fatalf("Expected 3 GSTR3B filings, got %d", len(gstr3b))
	}
	// Sorted most recent first
	if gstr3b[0].DateOfFiling != "19/06/2023" || gstr3b[1].DateOfFiling != "18/05/2023" {
		t.Errorf("Expected descending date order, got %s then %s", gstr3b[0].DateOfFiling, gstr3b[1].DateOfFiling)
	}
	if len(groups["GSTR1"]) != 1 {
		t.Errorf("Expected 1 GSTR1 filing, got %d", len(groups["GSTR1"]))
	}
}
