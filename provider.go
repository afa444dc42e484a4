package fund

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// QuoteProvider fetches current quotes for a set of tokens. The result
// is keyed by token id; a provider that does not know a token simply
// leaves it out.
type QuoteProvider interface {
	Name() string
	Quotes(ctx context.Context, tokens []Token) (PriceMap, error)
}

// quoteTTL bounds how stale a cached live quote can get.
const quoteTTL = 2 * time.Minute

// Builtin request tokens for derived pricing. A token priced as a
// multiple of BTC or ETH needs the underlying quote, whether or not
// bitcoin or ethereum are in the registry themselves.
var (
	bitcoinToken  = Token{ID: BitcoinID, Symbol: BitcoinSymbol, Name: "Bitcoin", Category: CategoryBtc}
	ethereumToken = Token{ID: EthereumID, Symbol: EthereumSymbol, Name: "Ethereum", Category: CategoryEth}
)

// PriceService merges two quote providers. Each token is fetched from
// its preferred source first, and the other provider covers whatever
// is missing. Quotes are cached for a short while so repeated renders
// do not hammer the APIs.
type PriceService struct {
	Primary   QuoteProvider
	Secondary QuoteProvider
	cache     *gocache.Cache
}

func NewPriceService(primary, secondary QuoteProvider) *PriceService {
	return &PriceService{
		Primary:   primary,
		Secondary: secondary,
		cache:     gocache.New(quoteTTL, 2*quoteTTL),
	}
}

// pricingRequests returns the deduplicated list of tokens whose quotes
// the registry needs, substituting the underlying coin for tokens with
// a derived price.
func pricingRequests(reg *Registry) []Token {
	seen := make(map[string]bool)
	var requests []Token
	for _, t := range reg.Tokens() {
		req := t
		switch t.Calculation {
		case CalcEthAmount:
			req = ethereumToken
		case CalcBtcAmount:
			req = bitcoinToken
		}
		if seen[req.ID] {
			continue
		}
		seen[req.ID] = true
		requests = append(requests, req)
	}
	return requests
}

// cacheKey identifies a request set regardless of registry order.
func cacheKey(requests []Token) string {
	ids := make([]string, 0, len(requests))
	for _, t := range requests {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return "quotes:" + strings.Join(ids, ",")
}

// Snapshot fetches current quotes for every token the registry needs.
// The returned map may be partial: a token both providers fail on is
// simply absent, and the joined errors say why.
func (s *PriceService) Snapshot(ctx context.Context, reg *Registry) (PriceMap, error) {
	requests := pricingRequests(reg)
	key := cacheKey(requests)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(PriceMap), nil
	}

	primary, secondary := s.split(requests)

	quotes := make(PriceMap, len(requests))
	var errs []error
	errs = append(errs, s.fetch(ctx, s.Primary, primary, quotes))
	errs = append(errs, s.fetch(ctx, s.Secondary, secondary, quotes))

	// Fall back to the other provider for whatever is still missing.
	errs = append(errs, s.fetch(ctx, s.Secondary, missing(primary, quotes), quotes))
	errs = append(errs, s.fetch(ctx, s.Primary, missing(secondary, quotes), quotes))

	if len(quotes) > 0 {
		s.cache.Set(key, quotes, gocache.DefaultExpiration)
	}
	return quotes, errors.Join(errs...)
}

// split partitions requests by preferred source.
func (s *PriceService) split(requests []Token) (primary, secondary []Token) {
	for _, t := range requests {
		if t.Source == SourceSecondary {
			secondary = append(secondary, t)
		} else {
			primary = append(primary, t)
		}
	}
	return primary, secondary
}

// fetch queries one provider and merges its answers into quotes,
// never overwriting a quote already obtained.
func (s *PriceService) fetch(ctx context.Context, p QuoteProvider, tokens []Token, quotes PriceMap) error {
	if p == nil || len(tokens) == 0 {
		return nil
	}
	got, err := p.Quotes(ctx, tokens)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name(), err)
	}
	for id, q := range got {
		if _, ok := quotes[id]; !ok {
			quotes[id] = q
		}
	}
	return nil
}

// missing returns the tokens of the set that still have no quote.
func missing(tokens []Token, quotes PriceMap) []Token {
	var out []Token
	for _, t := range tokens {
		if _, ok := quotes[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// PricesOn implements HistoricalPriceSource when the primary provider
// supports historical lookups.
func (s *PriceService) PricesOn(ctx context.Context, ids []string, on Date) (PriceMap, error) {
	src, ok := s.Primary.(HistoricalPriceSource)
	if !ok {
		return nil, fmt.Errorf("provider %s has no historical prices", s.Primary.Name())
	}
	return src.PricesOn(ctx, ids, on)
}
