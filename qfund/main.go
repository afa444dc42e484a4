// qfund is the command line interface to the fund ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/quotafund/fund/cmd"
)

func main() {
	// A .env file can carry QFUND_DIR and provider settings.
	godotenv.Load()

	completer()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completer installs shell completion. It is a no-op except when invoked by
// the shell completion hooks.
func completer() {
	sub := map[string]*complete.Command{}
	for _, name := range []string{
		"init", "deposit", "withdraw", "buy", "sell", "tx", "fmt",
		"token", "tokens", "summary", "holdings", "fetch", "history", "serve",
	} {
		sub[name] = &complete.Command{}
	}
	qfund := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"fund-dir": predict.Dirs("*"),
		},
	}
	qfund.Complete("qfund")
}
