package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator(t *testing.T) {
	var acc Accumulator

	stmt, ok := acc.Add("SELECT *")
	assert.False(t, ok)
	assert.Empty(t, stmt)
	assert.True(t, acc.Pending())

	_, ok = acc.Add("   ")
	assert.False(t, ok)

	stmt, ok = acc.Add("FROM t;  ")
	assert.True(t, ok)
	assert.Equal(t, "SELECT * FROM t", stmt)
	assert.False(t, acc.Pending())

	stmt, ok = acc.Add("SELECT 1;")
	assert.True(t, ok)
	assert.Equal(t, "SELECT 1", stmt)

	_, ok = acc.Add(";")
	assert.False(t, ok, "a bare terminator is not a statement")
	assert.False(t, acc.Pending())

	acc.Add("SELECT 2")
	acc.Reset()
	assert.False(t, acc.Pending())
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit("quit"))
	assert.True(t, IsQuit(" exit "))
	assert.False(t, IsQuit("exit;"))
	assert.False(t, IsQuit("SELECT quit FROM t"))
}

func TestBatchStatement(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"SELECT", "*", "FROM", "t;"}, "SELECT * FROM t"},
		{[]string{"SELECT * FROM t"}, "SELECT * FROM t"},
		{[]string{"DROP TABLE x", ";"}, "DROP TABLE x"},
		{nil, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BatchStatement(tc.args))
	}
}
