package wallet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/wire"
)

const (
	testnetKey = "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA"
	mainnetKey = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	segwitAddr = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"
)

const dump = `# Wallet dump created by Bitcoin v0.17.0
# * Created on 2019-01-10T12:00:00Z
# * Best block at time of backup was 1451 (00000000000000000000000000000000),
#   mined on 2019-01-10T11:59:00Z

` + testnetKey + ` 2019-01-10T11:00:00Z label= # addr=` + segwitAddr + `
` + testnetKey + ` 2019-01-10T11:00:00Z reserve=1 # addr=` + segwitAddr + "\r" + `

# End of dump
`

func TestParseDump(t *testing.T) {
	keys, err := ParseDump(strings.NewReader(dump), crypto.TestNet, crypto.MainNet)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	assert.Equal(t, Key{Line: 6, WIF: mainnetKey, Address: segwitAddr}, keys[0])
	assert.Equal(t, 7, keys[1].Line)
}

func TestParseDumpIgnoresNonKeyLines(t *testing.T) {
	keys, err := ParseDump(strings.NewReader("# comment\n\nshort addr=xyz\n"), crypto.TestNet, crypto.MainNet)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestParseDumpWrongNetwork(t *testing.T) {
	_, err := ParseDump(strings.NewReader(dump), crypto.MainNet, crypto.TestNet)

	var parseErr *wire.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 6, parseErr.Line)
	assert.ErrorIs(t, err, crypto.ErrWIFNetwork)
}

func TestParseDumpFileAndWriteKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.dump")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o600))

	keys, err := ParseDumpFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteKeys(&buf, keys))
	assert.Equal(t, mainnetKey+"\n"+mainnetKey+"\n", buf.String())

	_, err = ParseDumpFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
