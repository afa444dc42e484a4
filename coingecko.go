package fund

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/time/rate"
)

const (
	coingeckoURL         = "https://api.coingecko.com/api/v3"
	coingeckoMinInterval = 2500 * time.Millisecond
)

// CoinGecko fetches quotes from the CoinGecko public API. Tokens are
// identified by their CoinGecko id (e.g. "bitcoin").
type CoinGecko struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	// historyClient overrides the disk-cached client used for historical
	// lookups; nil selects the default.
	historyClient *http.Client
}

// NewCoinGecko returns a provider against the public CoinGecko API.
// The public tier allows roughly 30 calls per minute, so requests are
// throttled well below that.
func NewCoinGecko() *CoinGecko {
	return &CoinGecko{
		client:  new(http.Client),
		limiter: rate.NewLimiter(rate.Every(coingeckoMinInterval), 1),
		baseURL: coingeckoURL,
	}
}

func (g *CoinGecko) Name() string { return "coingecko" }

// cgMarket is the subset of /coins/markets we read.
type cgMarket struct {
	ID                       string  `json:"id"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCap                float64 `json:"market_cap"`
	FullyDilutedValuation    float64 `json:"fully_diluted_valuation"`
}

// Quotes returns current quotes keyed by token id. Ids unknown to
// CoinGecko are simply absent from the result.
func (g *CoinGecko) Quotes(ctx context.Context, tokens []Token) (PriceMap, error) {
	if len(tokens) == 0 {
		return PriceMap{}, nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		ids = append(ids, t.ID)
	}
	addr := fmt.Sprintf("%s/coins/markets?vs_currency=usd&ids=%s", g.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var markets []cgMarket
	if err := jwget(ctx, g.client, addr, &markets); err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	quotes := make(PriceMap, len(markets))
	for _, m := range markets {
		quotes[m.ID] = PriceQuote{
			Price:     m.CurrentPrice,
			Change24h: m.PriceChangePercentage24h,
			MarketCap: m.MarketCap,
			FDV:       m.FullyDilutedValuation,
		}
	}
	return quotes, nil
}

// PricesOn returns historical closing prices for the given ids on a
// given day. Responses are cached on disk since closing prices never
// change once the day is over.
func (g *CoinGecko) PricesOn(ctx context.Context, ids []string, on Date) (PriceMap, error) {
	client := g.historyClient
	if client == nil {
		client = dailyCachedClient()
	}
	prices := make(PriceMap, len(ids))
	for _, id := range ids {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		// The history endpoint wants dd-mm-yyyy.
		addr := fmt.Sprintf("%s/coins/%s/history?date=%s&localization=false",
			g.baseURL, url.PathEscape(id), on.Format("02-01-2006"))

		var jobj interface{}
		if err := jwget(ctx, client, addr, &jobj); err != nil {
			return nil, fmt.Errorf("coingecko history %q on %s: %w", id, on, err)
		}
		val, err := jsonpath.Get("$.market_data.current_price.usd", jobj)
		if err != nil {
			// Tokens with no market data on that day (delisted, too
			// recent) just have no price.
			continue
		}
		price, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("coingecko history %q on %s: unexpected price type %T", id, on, val)
		}
		prices[id] = PriceQuote{Price: price}
	}
	return prices, nil
}
