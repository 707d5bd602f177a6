package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/clientbook/renderer"
	"github.com/google/subcommands"
)

// --- client-add Command ---

type clientAddCmd struct {
	name string
}

func (*clientAddCmd) Name() string     { return "client-add" }
func (*clientAddCmd) Synopsis() string { return "create a new client" }
func (*clientAddCmd) Usage() string {
	return `cbk client-add -n <name>

  Creates a client. Client names are unique.
`
}

func (c *clientAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Client name")
}

func (c *clientAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	client, err := s.store.CreateClient(ctx, c.name)
	if err != nil {
		return failure("creating client", err)
	}
	fmt.Fprintf(stdout, "Client %q created with id %s\n", client.Name, client.ID)
	return subcommands.ExitSuccess
}

// --- client-rename Command ---

type clientRenameCmd struct {
	client string
	name   string
}

func (*clientRenameCmd) Name() string     { return "client-rename" }
func (*clientRenameCmd) Synopsis() string { return "change the name of a client" }
func (*clientRenameCmd) Usage() string {
	return `cbk client-rename -c <client> -n <new name>

  Renames a client. Its transactions are kept.
`
}

func (c *clientRenameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
	f.StringVar(&c.name, "n", "", "New client name")
}

func (c *clientRenameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	client, err := s.store.ResolveClient(ctx, c.client)
	if err != nil {
		return failure("finding client", err)
	}
	renamed, err := s.store.RenameClient(ctx, client.ID, c.name)
	if err != nil {
		return failure("renaming client", err)
	}
	fmt.Fprintf(stdout, "Client %q renamed to %q\n", client.Name, renamed.Name)
	return subcommands.ExitSuccess
}

// --- client-delete Command ---

type clientDeleteCmd struct {
	client string
	yes    bool
}

func (*clientDeleteCmd) Name() string     { return "client-delete" }
func (*clientDeleteCmd) Synopsis() string { return "delete a client and all its transactions" }
func (*clientDeleteCmd) Usage() string {
	return `cbk client-delete -c <client> -y

  Deletes a client and all its transactions. This cannot be undone, -y confirms it.
`
}

func (c *clientDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "c", "", "Client name or id")
	f.BoolVar(&c.yes, "y", false, "Confirm the deletion")
}

func (c *clientDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if !c.yes {
		fmt.Fprintf(os.Stderr, "Deleting %q also deletes all its transactions, use -y to confirm.\n", c.client)
		return subcommands.ExitUsageError
	}
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	client, err := s.store.ResolveClient(ctx, c.client)
	if err != nil {
		return failure("finding client", err)
	}
	if err := s.store.DeleteClient(ctx, client.ID); err != nil {
		return failure("deleting client", err)
	}
	fmt.Fprintf(stdout, "Client %q deleted\n", client.Name)
	return subcommands.ExitSuccess
}

// --- clients Command ---

type clientsCmd struct{}

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "list all clients" }
func (*clientsCmd) Usage() string {
	return `cbk clients

  Lists all clients by name.
`
}

func (*clientsCmd) SetFlags(*flag.FlagSet) {}

func (*clientsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := start(ctx)
	if s == nil {
		return status
	}
	defer s.Close()

	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return failure("listing clients", err)
	}
	printMarkdown(renderer.ClientsMarkdown(clients))
	return subcommands.ExitSuccess
}
