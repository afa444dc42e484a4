package fund

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
)

// Transaction defines the common interface for all types of financial
// transactions that can be recorded in the ledger.
//
// Transaction is a closed sum over Deposit, Withdraw, Buy and Sell, so a cash
// movement carrying a token symbol, or a trade missing one, is not
// representable by construction.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	ID() string        // ID returns the unique external id of the transaction.
	USD() Money        // USD returns the total USD value of the transaction.
	Equal(Transaction) bool
	Validate(reg *Registry) (Transaction, error)
}

type baseCmd struct {
	Command  CommandType `json:"command"`        // Command specifies the type of transaction.
	TxID     string      `json:"id"`             // TxID is the unique external id, the append-or-replace key.
	Date     Date        `json:"date"`           // Date is the calendar day when the transaction took place.
	USDValue Money       `json:"usdValue"`       // USDValue is the total USD value of the transaction.
	Memo     string      `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// ID returns the unique external id of the transaction.
func (t baseCmd) ID() string { return t.TxID }

// USD returns the total USD value of the transaction.
func (t baseCmd) USD() Money { return t.USDValue }

// validate checks the base command fields. It sets the date to today if it's
// zero. It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) validate() error {
	if t.TxID == "" {
		return errors.New("transaction id is missing")
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if !t.USDValue.IsPositive() {
		return fmt.Errorf("transaction usd value must be positive, got %s", t.USDValue)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("id", t.TxID)
	w.Append("date", t.Date)
	w.Append("usdValue", t.USDValue)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// cashCmd is a component for cash-flow transactions (deposit, withdraw).
type cashCmd struct {
	baseCmd
	Quota Money `json:"quotaValue,omitempty"` // Quota is the share price used to convert USD into shares.
}

// QuotaOr returns the quota value recorded on the transaction, or the given
// fallback (the fund's initial quota value) when none was recorded.
func (t cashCmd) QuotaOr(initial Money) Money {
	if t.Quota.IsZero() {
		return initial
	}
	return t.Quota
}

// MarshalJSON implements the json.Marshaler interface for cashCmd.
func (t cashCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	if !t.Quota.IsZero() {
		w.Append("quotaValue", t.Quota)
	}
	return w.MarshalJSON()
}

// tokenCmd is a component for token-based transactions (buy, sell).
type tokenCmd struct {
	baseCmd
	Token  string   `json:"token"`           // Token is the symbol of the token involved in the transaction.
	Amount Quantity `json:"amount"`          // Amount is the number of token units bought or sold.
	Price  Money    `json:"price,omitempty"` // Price is the optional per-unit price at transaction time.
}

// validate checks the token command fields against the token registry.
func (t *tokenCmd) validate(reg *Registry) error {
	if err := t.baseCmd.validate(); err != nil {
		return err
	}
	if t.Token == "" {
		return errors.New("token symbol is missing")
	}
	if reg != nil && !reg.Has(t.Token) {
		return fmt.Errorf("token %q not declared in registry", t.Token)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("token amount must be positive, got %s", t.Amount)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for tokenCmd.
func (t tokenCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("token", t.Token)
	w.Append("amount", t.Amount)
	if !t.Price.IsZero() {
		w.Append("price", t.Price)
	}
	return w.MarshalJSON()
}

// Deposit represents a cash contribution to the pool. The USD value is
// converted into shares at the recorded quota value (or the fund's initial
// quota value when none is recorded).
type Deposit struct {
	cashCmd
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(id string, day Date, memo string, usd Money, quota Money) Deposit {
	return Deposit{cashCmd{
		baseCmd: baseCmd{Command: CmdDeposit, TxID: id, Date: day, USDValue: usd, Memo: memo},
		Quota:   quota,
	}}
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd.equal(o.baseCmd) && t.Quota.Equal(o.Quota)
}

// Validate checks the Deposit transaction's fields.
func (t Deposit) Validate(_ *Registry) (Transaction, error) {
	if err := t.baseCmd.validate(); err != nil {
		return t, err
	}
	if t.Quota.IsNegative() {
		return t, fmt.Errorf("deposit quota value cannot be negative, got %s", t.Quota)
	}
	return t, nil
}

// Withdraw represents a cash redemption from the pool. The USD value is
// converted into shares redeemed at the recorded quota value.
type Withdraw struct {
	cashCmd
}

// NewWithdraw creates a new Withdraw transaction.
func NewWithdraw(id string, day Date, memo string, usd Money, quota Money) Withdraw {
	return Withdraw{cashCmd{
		baseCmd: baseCmd{Command: CmdWithdraw, TxID: id, Date: day, USDValue: usd, Memo: memo},
		Quota:   quota,
	}}
}

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.baseCmd.equal(o.baseCmd) && t.Quota.Equal(o.Quota)
}

// Validate checks the Withdraw transaction's fields.
func (t Withdraw) Validate(_ *Registry) (Transaction, error) {
	if err := t.baseCmd.validate(); err != nil {
		return t, err
	}
	if t.Quota.IsNegative() {
		return t, fmt.Errorf("withdraw quota value cannot be negative, got %s", t.Quota)
	}
	return t, nil
}

// Buy represents a purchase of token units with pool cash.
type Buy struct {
	tokenCmd
}

// NewBuy creates a new Buy transaction.
func NewBuy(id string, day Date, memo, token string, amount Quantity, usd Money, price Money) Buy {
	return Buy{tokenCmd{
		baseCmd: baseCmd{Command: CmdBuy, TxID: id, Date: day, USDValue: usd, Memo: memo},
		Token:   token,
		Amount:  amount,
		Price:   price,
	}}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.tokenCmd.equal(o.tokenCmd)
}

// Validate checks the Buy transaction's fields against the token registry.
func (t Buy) Validate(reg *Registry) (Transaction, error) {
	if err := t.tokenCmd.validate(reg); err != nil {
		return t, err
	}
	return t, nil
}

// Sell represents a sale of token units for pool cash.
type Sell struct {
	tokenCmd
}

// NewSell creates a new Sell transaction.
func NewSell(id string, day Date, memo, token string, amount Quantity, usd Money, price Money) Sell {
	return Sell{tokenCmd{
		baseCmd: baseCmd{Command: CmdSell, TxID: id, Date: day, USDValue: usd, Memo: memo},
		Token:   token,
		Amount:  amount,
		Price:   price,
	}}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.tokenCmd.equal(o.tokenCmd)
}

// Validate checks the Sell transaction's fields against the token registry.
// The engine deliberately does not check the sale against current holdings:
// an inconsistent ledger replays to a negative holding instead of faulting.
func (t Sell) Validate(reg *Registry) (Transaction, error) {
	if err := t.tokenCmd.validate(reg); err != nil {
		return t, err
	}
	return t, nil
}

// equal compares baseCmd fields. Money is compared by value, not by
// representation, so it cannot rely on struct equality.
func (t baseCmd) equal(o baseCmd) bool {
	return t.Command == o.Command && t.TxID == o.TxID && t.Date == o.Date &&
		t.USDValue.Equal(o.USDValue) && t.Memo == o.Memo
}

func (t tokenCmd) equal(o tokenCmd) bool {
	return t.baseCmd.equal(o.baseCmd) && t.Token == o.Token &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// UnmarshalJSON implementations rely on the plain field tags; only the
// marshaling side needs the ordered writer.
func (t *Deposit) UnmarshalJSON(data []byte) error {
	type alias cashCmd
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	t.cashCmd = cashCmd(a)
	return nil
}

func (t *Withdraw) UnmarshalJSON(data []byte) error {
	type alias cashCmd
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	t.cashCmd = cashCmd(a)
	return nil
}

func (t *Buy) UnmarshalJSON(data []byte) error {
	type alias tokenCmd
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	t.tokenCmd = tokenCmd(a)
	return nil
}

func (t *Sell) UnmarshalJSON(data []byte) error {
	type alias tokenCmd
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	t.tokenCmd = tokenCmd(a)
	return nil
}
