package sqlite3adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName(t *testing.T) {
	a := &adapter{}

	column, err := a.ColumnName("age")
	require.NoError(t, err)
	assert.Equal(t, "age", column)

	_, err = a.ColumnName("id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")

	_, err = a.ColumnName(`we"ird`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestInsertSamplesStatement(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO samples ("age", "color") VALUES (?, ?)`,
		insertSamplesStatement([]string{"age", "color"}, 1))
	assert.Equal(t,
		`INSERT INTO samples ("age", "color") VALUES (?, ?), (?, ?), (?, ?)`,
		insertSamplesStatement([]string{"age", "color"}, 3))
	assert.Equal(t,
		`INSERT INTO samples ("age") VALUES (?)`,
		insertSamplesStatement([]string{"age"}, 1))
}
