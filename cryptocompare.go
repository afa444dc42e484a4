package fund

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const cryptocompareURL = "https://min-api.cryptocompare.com"

// CryptoCompare fetches quotes from the CryptoCompare API. Unlike
// CoinGecko it is keyed by ticker symbol, so tokens whose symbol
// clashes on CryptoCompare carry an AltSymbol in the registry.
type CryptoCompare struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewCryptoCompare() *CryptoCompare {
	return &CryptoCompare{
		client:  new(http.Client),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL: cryptocompareURL,
	}
}

func (c *CryptoCompare) Name() string { return "cryptocompare" }

// ccQuote is the RAW.<SYM>.USD object of /data/pricemultifull.
type ccQuote struct {
	Price        float64 `json:"PRICE"`
	ChangePct24h float64 `json:"CHANGEPCT24HOUR"`
	MarketCap    float64 `json:"MKTCAP"`
}

type ccMultiFull struct {
	Raw map[string]map[string]ccQuote `json:"RAW"`
}

// querySymbol is the symbol CryptoCompare knows the token by.
func querySymbol(t Token) string {
	if t.AltSymbol != "" {
		return t.AltSymbol
	}
	return t.Symbol
}

// Quotes returns current quotes keyed by token id. Symbols unknown to
// CryptoCompare are absent from the result.
func (c *CryptoCompare) Quotes(ctx context.Context, tokens []Token) (PriceMap, error) {
	if len(tokens) == 0 {
		return PriceMap{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// Map query symbols back to token ids for the response.
	bySymbol := make(map[string]string, len(tokens))
	syms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		sym := strings.ToUpper(querySymbol(t))
		if _, dup := bySymbol[sym]; dup {
			continue
		}
		bySymbol[sym] = t.ID
		syms = append(syms, sym)
	}
	addr := fmt.Sprintf("%s/data/pricemultifull?fsyms=%s&tsyms=USD", c.baseURL, url.QueryEscape(strings.Join(syms, ",")))

	var full ccMultiFull
	if err := jwget(ctx, c.client, addr, &full); err != nil {
		return nil, fmt.Errorf("cryptocompare pricemultifull: %w", err)
	}

	quotes := make(PriceMap, len(full.Raw))
	for sym, byCurrency := range full.Raw {
		id, ok := bySymbol[sym]
		if !ok {
			continue
		}
		q, ok := byCurrency["USD"]
		if !ok {
			continue
		}
		quotes[id] = PriceQuote{
			Price:     q.Price,
			Change24h: q.ChangePct24h,
			MarketCap: q.MarketCap,
		}
	}
	return quotes, nil
}
