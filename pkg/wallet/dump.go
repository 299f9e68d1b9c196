// Package wallet migrates keys exported by a testnet node's dumpwallet RPC
// into mainnet wallet import format.
package wallet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// dumpLine matches a key line of a dumpwallet file: a 52 character
// compressed WIF followed, on the same line, by addr=<42 character address>.
var dumpLine = regexp.MustCompile(`^([a-zA-Z0-9]{52}).*?addr=([a-zA-Z0-9]{42})`)

// Key is one private key recovered from a dump.
type Key struct {
	Line    int
	WIF     string // Re-encoded for the target network
	Address string // Address as written in the dump
}

// ParseDump scans a dumpwallet file and returns every key line with its
// private key converted from one network to another. Lines that are not key
// lines (comments, headers, blanks) are ignored. A key line whose WIF fails
// to decode aborts the scan.
func ParseDump(r io.Reader, from, to crypto.Network) ([]Key, error) {
	var keys []Key

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		m := dumpLine.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if m == nil {
			continue
		}

		wif, err := crypto.ConvertWIF(m[1], from, to)
		if err != nil {
			return nil, &wire.ParseError{Line: line, Field: "wif", Message: "converting key", Cause: err}
		}

		keys = append(keys, Key{Line: line, WIF: wif, Address: m[2]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	return keys, nil
}

// ParseDumpFile is ParseDump over a file converting testnet keys to mainnet.
func ParseDumpFile(path string) ([]Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	return ParseDump(f, crypto.TestNet, crypto.MainNet)
}

// WriteKeys writes one WIF per line.
func WriteKeys(w io.Writer, keys []Key) error {
	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintln(bw, k.WIF); err != nil {
			return err
		}
	}
	return bw.Flush()
}
