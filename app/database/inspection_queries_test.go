package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableForMachine(t *testing.T) {
	assert.Equal(t, "inline_inspection_form_master_1", TableForMachine("1"))
	assert.Equal(t, "inline_inspection_form_master_1", TableForMachine("01"))
	assert.Equal(t, "inline_inspection_form_master_2", TableForMachine("2"))
	assert.Equal(t, "inline_inspection_form_master_3", TableForMachine("03"))
	assert.Equal(t, "inline_inspection_form_master_1", TableForMachine(""), "unknown machines fall back to the first table")
}

func TestRenumberPlaceholders(t *testing.T) {
	query := "SELECT a FROM t1 WHERE x = $1 AND y = $2" +
		" UNION ALL SELECT a FROM t2 WHERE x = $1 AND y = $2" +
		" UNION ALL SELECT a FROM t3 WHERE x = $1 AND y = $2"

	got := renumberPlaceholders(query, 2, 3)

	want := "SELECT a FROM t1 WHERE x = $1 AND y = $2" +
		" UNION ALL SELECT a FROM t2 WHERE x = $3 AND y = $4" +
		" UNION ALL SELECT a FROM t3 WHERE x = $5 AND y = $6"
	assert.Equal(t, want, got)
}

func TestRenumberPlaceholdersManyArgs(t *testing.T) {
	// Offsets push single-digit placeholders into double digits; the rewrite
	// must not corrupt neighbours.
	query := "SELECT a FROM t1 WHERE x = $1 AND y = $7" +
		" UNION ALL SELECT a FROM t2 WHERE x = $1 AND y = $7"

	got := renumberPlaceholders(query, 7, 2)

	want := "SELECT a FROM t1 WHERE x = $1 AND y = $7" +
		" UNION ALL SELECT a FROM t2 WHERE x = $8 AND y = $14"
	assert.Equal(t, want, got)
}

func TestRenumberPlaceholdersNoArgs(t *testing.T) {
	query := "SELECT a FROM t1 UNION ALL SELECT a FROM t2"
	assert.Equal(t, query, renumberPlaceholders(query, 0, 2))
}
