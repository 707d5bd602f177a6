package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/config"
	"github.com/etnz/clientbook/quote"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// setup points the global flags at a fresh record store and static quotes.
func setup(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENTBOOK_LOG_LEVEL", "disabled")
	t.Setenv("CLIENTBOOK_CURRENCY", "INR")

	oldDB, oldRaw, oldSource, oldOut := *dbPath, *rawMD, newSource, stdout
	t.Cleanup(func() { *dbPath, *rawMD, newSource, stdout = oldDB, oldRaw, oldSource, oldOut })

	*dbPath = filepath.Join(t.TempDir(), "cli.db")
	*rawMD = true
	newSource = func(*config.Config, zerolog.Logger) quote.Source {
		return quote.Static{"INFY": clientbook.M(1650)}
	}
}

// run executes a subcommand with args and returns its status and output.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	var buf bytes.Buffer
	stdout = &buf
	status := c.Execute(context.Background(), f)
	return status, buf.String()
}

func mustRun(t *testing.T, c subcommands.Command, args ...string) string {
	t.Helper()
	status, out := run(t, c, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want success", c.Name(), args, status)
	}
	return out
}

func TestClientCommands(t *testing.T) {
	setup(t)

	out := mustRun(t, &clientAddCmd{}, "-n", "Asha")
	if !strings.Contains(out, `Client "Asha" created`) {
		t.Errorf("client-add output = %q", out)
	}
	if status, _ := run(t, &clientAddCmd{}, "-n", "Asha"); status != subcommands.ExitFailure {
		t.Errorf("client-add duplicate = %v, want failure", status)
	}
	if status, _ := run(t, &clientAddCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("client-add without name = %v, want usage error", status)
	}

	mustRun(t, &clientRenameCmd{}, "-c", "Asha", "-n", "Asha Rao")
	out = mustRun(t, &clientsCmd{})
	if !strings.Contains(out, "Asha Rao") {
		t.Errorf("clients output = %q, want the renamed client", out)
	}

	if status, _ := run(t, &clientDeleteCmd{}, "-c", "Asha Rao"); status != subcommands.ExitUsageError {
		t.Errorf("client-delete without -y = %v, want usage error", status)
	}
	mustRun(t, &clientDeleteCmd{}, "-c", "Asha Rao", "-y")
	out = mustRun(t, &clientsCmd{})
	if !strings.Contains(out, "No clients.") {
		t.Errorf("clients output = %q, want no clients", out)
	}
}

func TestTradeCommands(t *testing.T) {
	setup(t)
	mustRun(t, &clientAddCmd{}, "-n", "Asha")

	out := mustRun(t, &tradeCmd{typ: "buy"}, "-c", "Asha", "-s", "infy", "-q", "10", "-p", "1500", "-d", "2025-03-01")
	if want := "Asha: #1 bought 10 INFY at ₹1,500.00 for ₹15,000.00 on 2025-03-01\n"; out != want {
		t.Errorf("buy output = %q, want %q", out, want)
	}
	mustRun(t, &tradeCmd{typ: "buy"}, "-c", "Asha", "-s", "INFY", "-q", "10", "-p", "1600", "-d", "2025-03-02")
	mustRun(t, &tradeCmd{typ: "sell"}, "-c", "Asha", "-s", "INFY", "-q", "5", "-p", "1700", "-d", "2025-03-03")

	for _, args := range [][]string{
		{"-c", "Asha", "-s", "INFY", "-q", "1.5", "-p", "1"},
		{"-c", "Asha", "-s", "INFY", "-q", "1", "-p", "abc"},
		{"-c", "Asha", "-s", "INFY.NS", "-q", "1", "-p", "1"},
		{"-c", "Nobody", "-s", "INFY", "-q", "1", "-p", "1"},
		{"-c", "Asha", "-s", "INFY", "-q", "1", "-p", "1", "-d", "someday"},
	} {
		if status, _ := run(t, &tradeCmd{typ: "buy"}, args...); status != subcommands.ExitFailure {
			t.Errorf("buy %v = %v, want failure", args, status)
		}
	}

	out = mustRun(t, &historyCmd{}, "-c", "Asha", "-t", "sell")
	if !strings.Contains(out, "| Sell") || strings.Contains(out, "| Buy") {
		t.Errorf("history -t sell output = %q", out)
	}

	out = mustRun(t, &txUpdateCmd{}, "-id", "3", "-p", "1800")
	if !strings.Contains(out, "#3 sold 5 INFY at ₹1,800.00") {
		t.Errorf("tx-update output = %q", out)
	}
	mustRun(t, &txDeleteCmd{}, "-id", "3")
	if status, _ := run(t, &txDeleteCmd{}, "-id", "3"); status != subcommands.ExitFailure {
		t.Errorf("tx-delete twice = %v, want failure", status)
	}
	out = mustRun(t, &historyCmd{}, "-c", "Asha")
	if strings.Contains(out, "Sell") {
		t.Errorf("history output = %q, want the sell deleted", out)
	}
}

func TestInsightsCommand(t *testing.T) {
	setup(t)
	mustRun(t, &clientAddCmd{}, "-n", "Asha")
	mustRun(t, &tradeCmd{typ: "buy"}, "-c", "Asha", "-s", "INFY", "-q", "10", "-p", "1500", "-d", "2025-03-01")
	mustRun(t, &tradeCmd{typ: "buy"}, "-c", "Asha", "-s", "INFY", "-q", "10", "-p", "1600", "-d", "2025-03-02")
	mustRun(t, &tradeCmd{typ: "sell"}, "-c", "Asha", "-s", "INFY", "-q", "5", "-p", "1700", "-d", "2025-03-03")
	mustRun(t, &tradeCmd{typ: "buy"}, "-c", "Asha", "-s", "TCS", "-q", "2", "-p", "3500", "-d", "2025-03-03")

	out := mustRun(t, &insightsCmd{}, "-c", "Asha", "-json")
	var got struct {
		Deployed   string   `json:"deployed_amount"`
		Realized   string   `json:"realized_profit"`
		Unrealized string   `json:"unrealized_profit"`
		Remaining  string   `json:"remaining_value"`
		Missing    []string `json:"missing_quotes"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("insights -json output %q: %v", out, err)
	}
	if got.Deployed != "38000.00" || got.Realized != "750.00" || got.Unrealized != "2000.00" || got.Remaining != "40000.00" {
		t.Errorf("insights = %+v, want deployed 38000.00, realized 750.00, unrealized 2000.00, remaining 40000.00", got)
	}
	if len(got.Missing) != 1 || got.Missing[0] != "TCS" {
		t.Errorf("insights missing = %v, want [TCS]", got.Missing)
	}

	out = mustRun(t, &insightsCmd{}, "-c", "Asha")
	if !strings.Contains(out, "Portfolio of Asha") || !strings.Contains(out, "₹2,000.00") {
		t.Errorf("insights output = %q", out)
	}

	out = mustRun(t, &quoteCmd{}, "-c", "Asha")
	if !strings.Contains(out, "| INFY") || !strings.Contains(out, "n/a") {
		t.Errorf("quote output = %q, want INFY priced and TCS n/a", out)
	}
}

func TestInsightsCommand_NoPositions(t *testing.T) {
	setup(t)
	mustRun(t, &clientAddCmd{}, "-n", "Ravi")
	out := mustRun(t, &insightsCmd{}, "-c", "Ravi")
	if !strings.Contains(out, "No stocks held currently.") {
		t.Errorf("insights output = %q, want no stocks held", out)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"buy", "sell", "insights", "serve", "import-legacy", "help"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q command", name)
		}
	}
	if _, ok := c.Sub["history"].Flags["from"]; !ok {
		t.Errorf("Completion() history has no -from flag")
	}
}
