package models

import "strings"

// Column labels of the species master list, in output order. The labels
// match the header row the converter emits for SpeciesCode.xls, with the
// region column appended.
const (
	ColSpeciesCode        = "SpeciesCode"
	ColScientificName     = "ScientificName"
	ColCommonName         = "CommonName"
	ColTreeType           = "Tree Type"
	ColSppValueAssignment = "SppValueAssignment"
	ColSpeciesRating      = "Species Rating (%)"
	ColBasicPrice         = "Basic Price ($/sq in)"
	ColPalmTrunkCost      = "Palm Trunk Cost($/ft)"
	ColReplacementCost    = "Replacement Cost ($)"
	ColTArSqInches        = "TAr (sq Inches)"
	ColRegion             = "region"
)

// SpeciesHeader returns the fixed 11 column header
func SpeciesHeader() []string {
	return []string{
		ColSpeciesCode, ColScientificName, ColCommonName, ColTreeType,
		ColSppValueAssignment, ColSpeciesRating, ColBasicPrice,
		ColPalmTrunkCost, ColReplacementCost, ColTArSqInches, ColRegion,
	}
}

// SpeciesRow is one species record for one region
type SpeciesRow struct {
	SpeciesCode          string
	ScientificName       string
	CommonName           string
	TreeType             string
	SppValueAssignment   string
	SpeciesRatingPercent string
	BasicPricePerSqIn    string
	PalmTrunkCostPerFt   string
	ReplacementCost      string
	TArSqInches          string
	Region               string
}

// Record returns the row's fields in SpeciesHeader order
func (r SpeciesRow) Record() []string {
	return []string{
		r.SpeciesCode, r.ScientificName, r.CommonName, r.TreeType,
		r.SppValueAssignment, r.SpeciesRatingPercent, r.BasicPricePerSqIn,
		r.PalmTrunkCostPerFt, r.ReplacementCost, r.TArSqInches, r.Region,
	}
}

// ColumnIndex maps a header label to its column position
type ColumnIndex map[string]int

// NewColumnIndex builds an index from a converter header row. Labels are
// trimmed and stripped of surrounding double quotes. The first occurrence of
// a duplicated label wins.
func NewColumnIndex(header []string) ColumnIndex {
	idx := make(ColumnIndex, len(header))
	for i, label := range header {
		label = CleanLabel(label)
		if _, exists := idx[label]; !exists {
			idx[label] = i
		}
	}
	return idx
}

// Has reports whether the header contained label
func (c ColumnIndex) Has(label string) bool {
	_, ok := c[label]
	return ok
}

// Get returns the field for label, or "" when the column is absent or the
// record is short
func (c ColumnIndex) Get(record []string, label string) string {
	i, ok := c[label]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// SpeciesRow populates a typed row from a converter record. Region is left
// empty for the caller to set.
func (c ColumnIndex) SpeciesRow(record []string) SpeciesRow {
	return SpeciesRow{
		SpeciesCode:          c.Get(record, ColSpeciesCode),
		ScientificName:       c.Get(record, ColScientificName),
		CommonName:           c.Get(record, ColCommonName),
		TreeType:             c.Get(record, ColTreeType),
		SppValueAssignment:   c.Get(record, ColSppValueAssignment),
		SpeciesRatingPercent: c.Get(record, ColSpeciesRating),
		BasicPricePerSqIn:    c.Get(record, ColBasicPrice),
		PalmTrunkCostPerFt:   c.Get(record, ColPalmTrunkCost),
		ReplacementCost:      c.Get(record, ColReplacementCost),
		TArSqInches:          c.Get(record, ColTArSqInches),
	}
}

// CleanLabel trims whitespace and one pair of surrounding double quotes
func CleanLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
