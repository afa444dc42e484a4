package fund

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes transactions from a stream of JSONL data, decodes each
// line into the appropriate transaction variant, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		switch identifier.Command {
		case CmdDeposit:
			var tx Deposit
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("could not decode deposit %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		case CmdWithdraw:
			var tx Withdraw
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("could not decode withdraw %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		case CmdBuy:
			var tx Buy
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("could not decode buy %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		case CmdSell:
			var tx Sell
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, fmt.Errorf("could not decode sell %q: %w", string(lineBytes), err)
			}
			decodedTx = tx
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}
		ledger.Append(decodedTx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form, one
// transaction per line in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeRegistry decodes token records from a stream of JSONL data, one token
// per line.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var token Token
		if err := json.Unmarshal(lineBytes, &token); err != nil {
			return nil, fmt.Errorf("could not decode token %q: %w", string(lineBytes), err)
		}
		if err := reg.Add(token); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read token registry: %w", err)
	}
	return reg, nil
}

// EncodeRegistry writes the token registry as JSONL, one token per line in
// insertion order.
func EncodeRegistry(w io.Writer, reg *Registry) error {
	for _, token := range reg.Tokens() {
		data, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("could not encode token %q: %w", token.Symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSettings decodes the fund settings from a JSON document.
func DecodeSettings(r io.Reader) (Settings, error) {
	settings := DefaultSettings()
	if err := json.NewDecoder(r).Decode(&settings); err != nil {
		return DefaultSettings(), fmt.Errorf("could not decode settings: %w", err)
	}
	return settings, nil
}

// EncodeSettings writes the fund settings as an indented JSON document.
func EncodeSettings(w io.Writer, settings Settings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(settings)
}
