package cmd

import (
	"flag"

	"github.com/etnz/goldbook"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors suggest values for flags sharing a name across commands.
var flagPredictors = map[string]complete.Predictor{
	"t":      predict.Set{"ALL", string(goldbook.Buy), string(goldbook.Sell), string(goldbook.Analysis), string(goldbook.Expense)},
	"p":      predict.Set{"day", "week", "month", "year"},
	"k":      predict.Set{"1000", "875", "750"},
	"source": predict.Set{string(goldbook.Manual), string(goldbook.Live)},
	"paper":  predict.Set{string(goldbook.A4), string(goldbook.A5), string(goldbook.Receipt), string(goldbook.Paper1015)},
	"role":   predict.Set{string(goldbook.Admin), string(goldbook.Limited)},
	"config": predict.Files("*.yaml"),
	"env":    predict.Files("*"),
	"json":   predict.Files("*.json"),
	"o":      predict.Files("*"),
	"dir":    predict.Dirs("*"),
}

// argPredictors suggest the positional arguments of a command.
var argPredictors = map[string]complete.Predictor{
	"employees":   predict.Set{"list", "add", "update", "rm"},
	"partners":    predict.Set{"list", "add", "update", "rm"},
	"users":       predict.Set{"list", "add", "update", "rm"},
	"permissions": predict.Set{"list", "add", "toggle", "rm", "print"},
	"restore":     predict.Files("*.json"),
}

// Completion describes the gbk command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{Sub: map[string]*complete.Command{}, Flags: predictFlags(global)}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(f), Args: argPredictors[c.Name()]}
	}
	return root
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
