package genesis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/genblock/pkg/wire"
)

const balancesCSV = `76a914b472a266d0bd89c13706a4132ccfb16f7c3b9fcb88ac,100,alice
0014b472a266d0bd89c13706a4132ccfb16f7c3b9fcb, 250,
51,0,anyone can spend
`

func TestReadBalances(t *testing.T) {
	balances, err := ReadBalances(strings.NewReader(balancesCSV))
	require.NoError(t, err)
	require.Len(t, balances, 3)

	assert.Equal(t, "76a914b472a266d0bd89c13706a4132ccfb16f7c3b9fcb88ac", balances[0].Script.String())
	assert.Equal(t, uint64(100), balances[0].Satoshis)
	assert.Equal(t, uint64(250), balances[1].Satoshis)
	assert.Equal(t, "51", balances[2].Script.String())
	assert.Equal(t, uint64(0), balances[2].Satoshis)

	outs := Outputs(balances)
	require.Len(t, outs, 3)
	assert.Equal(t, Output{Script: balances[1].Script, Amount: 250}, outs[1])
}

func TestReadBalancesEmpty(t *testing.T) {
	balances, err := ReadBalances(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestReadBalancesRejectsBadRows(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		field string
	}{
		{"bad hex", "51,1,x\nzz,2,y\n", 2, "script"},
		{"odd hex", "515,1,x\n", 1, "script"},
		{"empty script", ",1,x\n", 1, "script"},
		{"negative amount", "51,-1,x\n", 1, "satoshis"},
		{"amount overflow", "51,18446744073709551616,x\n", 1, "satoshis"},
		{"decimal amount", "51,1.5,x\n", 1, "satoshis"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadBalances(strings.NewReader(tc.input))

			var parseErr *wire.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
			assert.Equal(t, tc.field, parseErr.Field)
		})
	}
}

func TestReadBalancesWrongColumnCount(t *testing.T) {
	_, err := ReadBalances(strings.NewReader("51,1\n"))

	var parseErr *wire.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "csv", parseErr.Field)
}

func TestLoadBalances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balances.csv")
	require.NoError(t, os.WriteFile(path, []byte(balancesCSV), 0o600))

	balances, err := LoadBalances(path)
	require.NoError(t, err)
	assert.Len(t, balances, 3)

	_, err = LoadBalances(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
