package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/etnz/goldbook/renderer"
	"github.com/google/subcommands"
)

type permissionsCmd struct {
	employee    string
	date        string
	destination string
	items       string
}

func (*permissionsCmd) Name() string     { return "permissions" }
func (*permissionsCmd) Synopsis() string { return "manage the exit permissions (gate passes)" }
func (*permissionsCmd) Usage() string {
	return `gbk permissions [list]
gbk permissions -employee <id> -to <destination> -items <items> [-d <date>] add
gbk permissions toggle <id>
gbk permissions rm <id>
gbk permissions print <id>

  An exit permission lets an employee take items out of the shop. It is
  PENDING until toggled to COMPLETED when the items are back.
`
}

func (c *permissionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.employee, "employee", "", "Employee id")
	f.StringVar(&c.date, "d", "", "Date of the permission, defaults to today")
	f.StringVar(&c.destination, "to", "", "Destination")
	f.StringVar(&c.items, "items", "", "Items taken out")
}

func (c *permissionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	act, args := action(f)
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		perms := a.store.Permissions()
		var err error
		switch {
		case act == "list":
			var list []goldbook.Permission
			if list, err = perms.List(ctx); err == nil {
				printMarkdown(permissionsMarkdown(list))
			}
		case act == "add":
			var p goldbook.Permission
			if p, err = c.permission(ctx, a); err != nil {
				break
			}
			if p, err = perms.Add(ctx, p); err == nil {
				fmt.Printf("Saved permission %s for %s\n", p.ID, p.EmployeeName)
			}
		case act == "toggle" && len(args) == 1:
			var p goldbook.Permission
			if p, err = perms.Toggle(ctx, args[0]); err == nil {
				fmt.Printf("Permission %s is now %s\n", p.ID, p.Status)
			}
		case act == "rm" && len(args) == 1:
			if err = perms.Delete(ctx, args[0]); err == nil {
				fmt.Printf("Removed permission %s\n", args[0])
			}
		case act == "print" && len(args) == 1:
			var p goldbook.Permission
			if p, err = perms.Get(ctx, args[0]); err != nil {
				break
			}
			var s goldbook.Settings
			if s, err = a.store.Settings().Load(ctx); err == nil {
				printMarkdown(renderer.Permission(p, s, a.store.Now()).Markdown())
			}
		default:
			f.Usage()
			return subcommands.ExitUsageError
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

// permission builds a new permission from the flags, naming the employee
// from the employee list.
func (c *permissionsCmd) permission(ctx context.Context, a *app) (goldbook.Permission, error) {
	p := goldbook.Permission{EmployeeID: c.employee, Destination: c.destination, Items: c.items}
	if c.employee != "" {
		e, err := a.store.Employees().Get(ctx, c.employee)
		if err != nil {
			return p, err
		}
		p.EmployeeName = e.Name
	}
	p.Date = date.New(a.store.Now().Date())
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			return p, err
		}
		p.Date = d
	}
	return p, nil
}

func permissionsMarkdown(list []goldbook.Permission) string {
	if len(list) == 0 {
		return "No permissions.\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| ID | Date | Employee | Destination | Items | Status |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|:---|")
	for _, p := range list {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", p.ID, p.Date, cellText(p.EmployeeName), cellText(p.Destination), cellText(p.Items), p.Status)
	}
	return b.String()
}
