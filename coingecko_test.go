package fund

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func testCoinGecko(srv *httptest.Server) *CoinGecko {
	return &CoinGecko{
		client:  srv.Client(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		baseURL: srv.URL,
	}
}

func TestCoinGecko_Quotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("vs_currency = %q", got)
		}
		w.Write([]byte(`[
			{"id":"bitcoin","current_price":60000,"price_change_percentage_24h":2.5,"market_cap":1200000000000,"fully_diluted_valuation":1260000000000},
			{"id":"solana","current_price":120.5,"price_change_percentage_24h":-1.2,"market_cap":56000000000}
		]`))
	}))
	defer srv.Close()

	g := testCoinGecko(srv)
	quotes, err := g.Quotes(context.Background(), []Token{
		{ID: "bitcoin", Symbol: "BTC"},
		{ID: "solana", Symbol: "SOL"},
	})
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}

	btc := quotes["bitcoin"]
	if btc.Price != 60000 || btc.Change24h != 2.5 || btc.FDV != 1.26e12 {
		t.Errorf("bitcoin quote = %+v", btc)
	}
	if quotes["solana"].Price != 120.5 {
		t.Errorf("solana quote = %+v", quotes["solana"])
	}
}

func TestCoinGecko_QuotesEmptyRegistry(t *testing.T) {
	g := NewCoinGecko()
	quotes, err := g.Quotes(context.Background(), nil)
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("quotes = %v, want empty without a request", quotes)
	}
}

func TestCoinGecko_QuotesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := testCoinGecko(srv)
	if _, err := g.Quotes(context.Background(), []Token{{ID: "bitcoin"}}); err == nil {
		t.Error("Quotes = nil error, want the HTTP failure")
	}
}

func TestCryptoCompare_Quotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/pricemultifull" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"RAW":{
			"NXSAI":{"USD":{"PRICE":3.21,"CHANGEPCT24HOUR":5.5,"MKTCAP":12000000}},
			"BTC":{"USD":{"PRICE":60000,"CHANGEPCT24HOUR":1.0,"MKTCAP":1200000000000}}
		}}`))
	}))
	defer srv.Close()

	c := &CryptoCompare{
		client:  srv.Client(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		baseURL: srv.URL,
	}

	quotes, err := c.Quotes(context.Background(), []Token{
		{ID: "nexus-ai", Symbol: "NXS", AltSymbol: "NXSAI"},
		{ID: "bitcoin", Symbol: "BTC"},
	})
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}

	// Keys are token ids, resolved back from the provider's symbols.
	if q := quotes["nexus-ai"]; q.Price != 3.21 || q.Change24h != 5.5 {
		t.Errorf("nexus-ai quote = %+v", q)
	}
	if quotes["bitcoin"].Price != 60000 {
		t.Errorf("bitcoin quote = %+v", quotes["bitcoin"])
	}
}

func TestCoinGecko_PricesOn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/bitcoin/history":
			if got := r.URL.Query().Get("date"); got != "15-01-2026" {
				t.Errorf("date = %q, want dd-mm-yyyy", got)
			}
			w.Write([]byte(`{"id":"bitcoin","market_data":{"current_price":{"usd":59000.5}}}`))
		case "/coins/delisted/history":
			// No market data for that day.
			w.Write([]byte(`{"id":"delisted"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	g := &CoinGecko{
		client:  srv.Client(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		baseURL: srv.URL,
		// The disk cache would leak between test runs.
		historyClient: srv.Client(),
	}

	prices, err := g.PricesOn(context.Background(), []string{"bitcoin", "delisted"}, MustParseDate("2026-01-15"))
	if err != nil {
		t.Fatalf("PricesOn: %v", err)
	}
	if got := prices["bitcoin"].Price; got != 59000.5 {
		t.Errorf("bitcoin price = %v", got)
	}
	if _, ok := prices["delisted"]; ok {
		t.Error("delisted id should have no price")
	}
}
