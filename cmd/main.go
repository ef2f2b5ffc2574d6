package cmd

import (
	"github.com/etnz/goldbook"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Command is a subcommand with its help group.
type Command struct {
	subcommands.Command
	Group string
}

// Commands lists every gbk subcommand.
var Commands = []Command{
	{&tradeCmd{typ: goldbook.Buy}, "counter"},
	{&tradeCmd{typ: goldbook.Sell}, "counter"},
	{&analysisCmd{}, "counter"},
	{&expenseCmd{}, "counter"},
	{&txCmd{}, "counter"},
	{&printCmd{}, "counter"},
	{&calcCmd{}, "counter"},

	{&pricesCmd{}, "prices"},
	{&watchCmd{}, "prices"},

	{&reportCmd{}, "reports"},
	{&profitCmd{}, "reports"},

	{&employeesCmd{}, "admin"},
	{&partnersCmd{}, "admin"},
	{&permissionsCmd{}, "admin"},
	{&usersCmd{}, "admin"},
	{&loginCmd{}, "admin"},
	{&settingsCmd{}, "admin"},
	{&clearCmd{}, "admin"},

	{&backupCmd{}, "backup"},
	{&restoreCmd{}, "backup"},
	{&cloudLoginCmd{}, "backup"},
	{&cloudBackupCmd{}, "backup"},
	{&cloudRestoreCmd{}, "backup"},

	{&serveCmd{}, "server"},
}
