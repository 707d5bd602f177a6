package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application commands and
// flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.CommandLine.VisitAll(func(fl *flag.Flag) {
		root.Flags[fl.Name] = predictFlag("", fl)
	})

	for _, group := range Commands {
		for _, c := range group {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: map[string]complete.Predictor{}}
			fs.VisitAll(func(fl *flag.Flag) {
				sub.Flags[fl.Name] = predictFlag(c.Name(), fl)
			})
			root.Sub[c.Name()] = sub
		}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func predictFlag(command string, fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch {
	case fl.Name == "db", command == "import-legacy" && fl.Name == "from":
		return predict.Files("*.db")
	case fl.Name == "t":
		return predict.Set{"buy", "sell"}
	}
	return predict.Something
}

func commandNames() []string {
	var names []string
	for _, group := range Commands {
		for _, c := range group {
			names = append(names, c.Name())
		}
	}
	return names
}
