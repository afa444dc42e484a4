package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/gorilla/mux"

	"github.com/quotafund/fund"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the fund reports over HTTP" }
func (*serveCmd) Usage() string {
	return `qfund serve [-addr <host:port>]

  Serves the fund reports as a JSON API:

    GET /api/summary             fund totals and quota value
    GET /api/portfolio           valued holdings, ?merge=1 to merge BTC/ETH
    GET /api/categories          per-category allocation
    GET /api/history             recorded snapshots, ?from=&to=

  Every valuation endpoint takes an optional ?date=YYYY-MM-DD cutoff.
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", "localhost:8080", "Address to listen on.")
}

func (p *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/summary", p.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/portfolio", p.handlePortfolio).Methods(http.MethodGet)
	api.HandleFunc("/categories", p.handleCategories).Methods(http.MethodGet)
	api.HandleFunc("/history", p.handleHistory).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         p.addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("serving fund API on http://%s", p.addr)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// queryDate parses the optional ?date= cutoff, defaulting to today.
func queryDate(req *http.Request) (fund.Date, error) {
	return parseDateOr(req.URL.Query().Get("date"), fund.Today())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (p *serveCmd) handleSummary(w http.ResponseWriter, req *http.Request) {
	day, err := queryDate(req)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	valuation, _, err := valuateOn(req.Context(), day)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, valuation.Summary)
}

func (p *serveCmd) handlePortfolio(w http.ResponseWriter, req *http.Request) {
	day, err := queryDate(req)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	valuation, _, err := valuateOn(req.Context(), day)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	items := valuation.Items
	if req.URL.Query().Get("merge") == "1" {
		items = fund.MergeBitcoinEthereum(items)
	}
	writeJSON(w, items)
}

func (p *serveCmd) handleCategories(w http.ResponseWriter, req *http.Request) {
	day, err := queryDate(req)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	valuation, _, err := valuateOn(req.Context(), day)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, valuation.Summary.Categories)
}

func (p *serveCmd) handleHistory(w http.ResponseWriter, req *http.Request) {
	from, err := parseDateOr(req.URL.Query().Get("from"), fund.Date{})
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	to, err := parseDateOr(req.URL.Query().Get("to"), fund.Today())
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	store, err := openSnapshots()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	defer store.Close()

	snapshots, err := store.Range(from, to)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, snapshots)
}
