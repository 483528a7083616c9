package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCellRollWeight(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345", "12.34"},
		{"105", "10.5"},
		{"12", "12"},
		{"12.345", "12.34"},
		{"0.25", "0.25"},
		{"05", "5"},
		{"abc12", "12"},
		{"1.2.3", "1.23"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCell(FieldRollWeight, tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCellRollWidth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"007", "7"},
		{"1200", "120"},
		{"850", "850"},
		{"0", "0"},
		{"00", "0"},
		{"8a5", "85"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCell(FieldRollWidthMM, tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCellFilmWeightGSM(t *testing.T) {
	assert.Equal(t, "12.3", NormalizeCell(FieldFilmWeightGSM, "123"))
	assert.Equal(t, "9.5", NormalizeCell(FieldFilmWeightGSM, "9.5"))
	assert.Equal(t, "12.3", NormalizeCell(FieldFilmWeightGSM, "12.34"))
}

func TestNormalizeCellTimeClamps(t *testing.T) {
	assert.Equal(t, "23", NormalizeCell(FieldHour, "25"))
	assert.Equal(t, "09", NormalizeCell(FieldHour, "09"))
	assert.Equal(t, "14", NormalizeCell(FieldHour, "145"))
	assert.Equal(t, "59", NormalizeCell(FieldMinute, "75"))
	assert.Equal(t, "30", NormalizeCell(FieldMinute, "30"))
	assert.Equal(t, "", NormalizeCell(FieldMinute, ""))
}

func TestNormalizeCellArm(t *testing.T) {
	assert.Equal(t, "L", NormalizeCell(FieldArm, "left"))
	assert.Equal(t, "R", NormalizeCell(FieldArm, "R"))
	assert.Equal(t, "", NormalizeCell(FieldArm, "123"))
}

func TestNormalizeCellIndicator(t *testing.T) {
	assert.Equal(t, "O", NormalizeCell(FieldGlossy, "o"))
	assert.Equal(t, "X", NormalizeCell(FieldPinHole, "xx"))
	assert.Equal(t, "", NormalizeCell(FieldWrinkles, "n"))
}

func TestNormalizeCellDisposition(t *testing.T) {
	assert.Equal(t, "KIV", NormalizeCell(FieldAcceptReject, "KIV"))
	assert.Equal(t, "Accept", NormalizeCell(FieldAcceptReject, "Accept"))
	assert.Equal(t, "", NormalizeCell(FieldAcceptReject, "kiv"))
	assert.Equal(t, "", NormalizeCell(FieldAcceptReject, "Hold"))
}

func TestCapitalizeWords(t *testing.T) {
	assert.Equal(t, "John Doe", CapitalizeWords("john doe"))
	assert.Equal(t, "MIS PRINT", CapitalizeWords("MIS PRINT"), "existing casing is preserved")
	assert.Equal(t, "", CapitalizeWords(""))
	assert.Equal(t, "A  B", CapitalizeWords("a  b"))
}

func TestNormalizeCellRemarksKeepsProductionCodes(t *testing.T) {
	assert.Equal(t, "UBS25PR026", NormalizeCell(FieldRemarks, "UBS25PR026"))
	assert.Equal(t, "Changed To UBS25PR026", NormalizeCell(FieldRemarks, "changed to UBS25PR026"))
}

func TestFinalizeCellMatchesNormalize(t *testing.T) {
	assert.Equal(t, NormalizeCell(FieldRemarks, "prd: ab12cd345"),
		FinalizeCell(FieldRemarks, "prd: ab12cd345"))
}
