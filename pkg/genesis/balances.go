package genesis

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/suffix-labs/genblock/pkg/script"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// balanceColumns is the fixed column count of a balances file:
// script hex, satoshis, and a free-form third column that is ignored.
const balanceColumns = 3

// Balance is one pre-allocated output of the genesis coinbase.
type Balance struct {
	Script   script.Script
	Satoshis uint64
}

// ToOutput converts the balance into a coinbase output.
func (b Balance) ToOutput() Output {
	return Output{Script: b.Script, Amount: b.Satoshis}
}

// balanceRow mirrors one line of a balances file before validation.
type balanceRow struct {
	Script   string `csv:"script"`
	Satoshis string `csv:"satoshis"`
	Note     string `csv:"note"`
}

// ParseBalance validates one (script hex, satoshis) pair. line is used only
// for error reporting. A malformed row is never skipped.
func ParseBalance(line int, scriptHex, satoshis string) (Balance, error) {
	scriptHex = strings.TrimSpace(scriptHex)
	if scriptHex == "" {
		return Balance{}, &wire.ParseError{Line: line, Field: "script", Message: "empty script"}
	}

	raw, err := hex.DecodeString(scriptHex)
	if err != nil {
		return Balance{}, &wire.ParseError{Line: line, Field: "script", Message: "not valid hex", Cause: err}
	}

	amount, err := strconv.ParseUint(strings.TrimSpace(satoshis), 10, 64)
	if err != nil {
		return Balance{}, &wire.ParseError{Line: line, Field: "satoshis", Message: "not an unsigned integer", Cause: err}
	}

	return Balance{Script: raw, Satoshis: amount}, nil
}

// ReadBalances parses a headerless balances CSV.
func ReadBalances(r io.Reader) ([]Balance, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = balanceColumns
	reader.TrimLeadingSpace = true

	var rows []balanceRow
	err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &wire.ParseError{Field: "csv", Message: "reading balances", Cause: err}
	}

	balances := make([]Balance, 0, len(rows))
	for i, row := range rows {
		b, err := ParseBalance(i+1, row.Script, row.Satoshis)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// LoadBalances reads a balances CSV file from disk.
func LoadBalances(path string) ([]Balance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening balances file: %w", err)
	}
	defer f.Close()

	return ReadBalances(f)
}

// Outputs converts balances to coinbase outputs, preserving order.
func Outputs(balances []Balance) []Output {
	out := make([]Output, 0, len(balances))
	for _, b := range balances {
		out = append(out, b.ToOutput())
	}
	return out
}
