package fund

import (
	"encoding/json"
	"fmt"
)

// Pricing identifiers that must be present in a price snapshot whenever a
// token with a BTC/ETH special calculation is being valued.
const (
	BitcoinID  = "bitcoin"
	EthereumID = "ethereum"
)

// Canonical tickers used for the merged Bitcoin/Ethereum display rows.
const (
	BitcoinSymbol  = "BTC"
	EthereumSymbol = "ETH"
)

// Category classifies a token for the per-category portfolio breakdown.
type Category string

const (
	CategoryBtc     Category = "Btc"
	CategoryEth     Category = "Eth"
	CategoryAI      Category = "AI"
	CategoryGaming  Category = "Gaming/Meme"
	CategoryDefi    Category = "Defi"
	CategoryMicro   Category = "Micro"
	CategoryPrivacy Category = "Privacy"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategoryBtc, CategoryEth, CategoryAI, CategoryGaming,
	CategoryDefi, CategoryMicro, CategoryPrivacy,
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// PriceSource selects which market-data provider prices a token.
type PriceSource string

const (
	SourcePrimary   PriceSource = "primary"
	SourceSecondary PriceSource = "secondary"
)

// SpecialCalculation overrides how a token's holding is valued. Derivative
// tokens (wrapped or staked BTC/ETH variants) track the price of the
// underlying asset instead of their own market price.
type SpecialCalculation string

const (
	CalcRegular   SpecialCalculation = ""
	CalcEthAmount SpecialCalculation = "ETH_AMOUNT"
	CalcBtcAmount SpecialCalculation = "BTC_AMOUNT"
)

// Token is an immutable reference record for a tradable asset.
//
// Symbol is the unique key joining transactions to token metadata; ID is the
// primary pricing-API key and is not necessarily unique (several wrapper
// tokens may share an underlying pricing id).
type Token struct {
	ID          string             `json:"id"`
	Symbol      string             `json:"symbol"`
	Name        string             `json:"name"`
	Category    Category           `json:"category"`
	AltSymbol   string             `json:"altSymbol,omitempty"`
	Source      PriceSource        `json:"source,omitempty"`
	Calculation SpecialCalculation `json:"calculation,omitempty"`
}

// PricingID returns the pricing-map key this token is valued with, taking the
// special calculation into account.
func (t Token) PricingID() string {
	switch t.Calculation {
	case CalcEthAmount:
		return EthereumID
	case CalcBtcAmount:
		return BitcoinID
	default:
		return t.ID
	}
}

// Validate checks the token record for correctness.
func (t Token) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("token symbol is missing")
	}
	if t.ID == "" {
		return fmt.Errorf("token %q: pricing id is missing", t.Symbol)
	}
	if t.Category != "" {
		if _, err := ParseCategory(string(t.Category)); err != nil {
			return fmt.Errorf("token %q: %w", t.Symbol, err)
		}
	}
	switch t.Calculation {
	case CalcRegular, CalcEthAmount, CalcBtcAmount:
	default:
		return fmt.Errorf("token %q: unknown special calculation %q", t.Symbol, t.Calculation)
	}
	switch t.Source {
	case "", SourcePrimary, SourceSecondary:
	default:
		return fmt.Errorf("token %q: unknown price source %q", t.Symbol, t.Source)
	}
	return nil
}

// Registry holds the token reference records, indexed by symbol.
type Registry struct {
	tokens []Token
	index  map[string]int // symbol -> position in tokens
}

// NewRegistry returns a new empty token registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers tokens, keeping the insertion order. Re-adding a symbol
// replaces the previous record.
func (r *Registry) Add(tokens ...Token) error {
	for _, t := range tokens {
		if err := t.Validate(); err != nil {
			return err
		}
		if i, ok := r.index[t.Symbol]; ok {
			r.tokens[i] = t
			continue
		}
		r.index[t.Symbol] = len(r.tokens)
		r.tokens = append(r.tokens, t)
	}
	return nil
}

// Get returns the token declared with this symbol, or nil if unknown.
func (r *Registry) Get(symbol string) *Token {
	i, ok := r.index[symbol]
	if !ok {
		return nil
	}
	return &r.tokens[i]
}

// Has reports whether a symbol is registered.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.index[symbol]
	return ok
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int { return len(r.tokens) }

// Tokens returns the registered tokens in insertion order.
func (r *Registry) Tokens() []Token {
	out := make([]Token, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// PricingIDs returns the set of pricing ids needed to value every registered
// token, including "bitcoin" and "ethereum" when any token uses a BTC/ETH
// special calculation.
func (r *Registry) PricingIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(r.tokens))
	for _, t := range r.tokens {
		id := t.PricingID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// MarshalJSON implements the json.Marshaler interface for Registry as a plain
// token array.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.tokens)
}

// UnmarshalJSON implements the json.Unmarshaler interface for Registry.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var tokens []Token
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*r = *NewRegistry()
	return r.Add(tokens...)
}
