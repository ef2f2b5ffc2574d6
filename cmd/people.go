package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/google/subcommands"
)

// action returns the first positional argument, defaulting to list.
func action(f *flag.FlagSet) (string, []string) {
	if f.NArg() == 0 {
		return "list", nil
	}
	return f.Arg(0), f.Args()[1:]
}

func cellText(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// --- Employees Command ---

type employeesCmd struct {
	name  string
	code  string
	job   string
	phone string
	email string
}

func (*employeesCmd) Name() string     { return "employees" }
func (*employeesCmd) Synopsis() string { return "manage the employees" }
func (*employeesCmd) Usage() string {
	return `gbk employees [list]
gbk employees -name <name> -code <code> [-job <title>] [-phone <phone>] [-email <email>] add
gbk employees [-name ...] update <id>
gbk employees rm <id>
`
}

func (c *employeesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Employee name")
	f.StringVar(&c.code, "code", "", "Employee code")
	f.StringVar(&c.job, "job", "", "Job title")
	f.StringVar(&c.phone, "phone", "", "Phone number")
	f.StringVar(&c.email, "email", "", "Email address")
}

func (c *employeesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	act, args := action(f)
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		employees := a.store.Employees()
		var err error
		switch {
		case act == "list":
			var list []goldbook.Employee
			if list, err = employees.List(ctx); err == nil {
				printMarkdown(employeesMarkdown(list))
			}
		case act == "add":
			var e goldbook.Employee
			e, err = employees.Add(ctx, goldbook.Employee{Name: c.name, Code: c.code, JobTitle: c.job, Phone: c.phone, Email: c.email})
			if err == nil {
				fmt.Printf("Added employee %s (%s)\n", e.Name, e.ID)
			}
		case act == "update" && len(args) == 1:
			var e goldbook.Employee
			if e, err = employees.Get(ctx, args[0]); err != nil {
				break
			}
			setIf(&e.Name, c.name)
			setIf(&e.Code, c.code)
			setIf(&e.JobTitle, c.job)
			setIf(&e.Phone, c.phone)
			setIf(&e.Email, c.email)
			if err = employees.Update(ctx, e); err == nil {
				fmt.Printf("Updated employee %s\n", e.ID)
			}
		case act == "rm" && len(args) == 1:
			if err = employees.Delete(ctx, args[0]); err == nil {
				fmt.Printf("Removed employee %s\n", args[0])
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

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func employeesMarkdown(list []goldbook.Employee) string {
	if len(list) == 0 {
		return "No employees.\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| ID | Code | Name | Job | Phone |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|")
	for _, e := range list {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", e.ID, cellText(e.Code), cellText(e.Name), cellText(e.JobTitle), cellText(e.Phone))
	}
	return b.String()
}

// --- Partners Command ---

type partnersCmd struct {
	name    string
	capital goldbook.Amount
}

func (*partnersCmd) Name() string     { return "partners" }
func (*partnersCmd) Synopsis() string { return "manage the partners and their capital" }
func (*partnersCmd) Usage() string {
	return `gbk partners [list]
gbk partners -name <name> -capital <amount> add
gbk partners [-name <name>] [-capital <amount>] update <id>
gbk partners rm <id>
`
}

func (c *partnersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Partner name")
	f.Var(amountValue{&c.capital}, "capital", "Capital brought by the partner")
}

func (c *partnersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	act, args := action(f)
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		partners := a.store.Partners()
		var err error
		switch {
		case act == "list":
			var list []goldbook.Partner
			if list, err = partners.List(ctx); err != nil {
				break
			}
			var s goldbook.Settings
			if s, err = a.store.Settings().Load(ctx); err != nil {
				break
			}
			shares, capital := goldbook.PartnerShares(list, goldbook.Amount{})
			var b strings.Builder
			fmt.Fprintln(&b, "| ID | Name | Capital | Share |")
			fmt.Fprintln(&b, "|:---|:---|---:|---:|")
			for _, sh := range shares {
				fmt.Fprintf(&b, "| %s | %s | %s | %s%% |\n", sh.Partner.ID, cellText(sh.Partner.Name), s.Money(sh.Partner.Capital).Whole(), sh.Percent.StringFixed(1))
			}
			fmt.Fprintf(&b, "| **Total** | | **%s** | |\n", s.Money(capital).Whole())
			printMarkdown(b.String())
		case act == "add":
			var p goldbook.Partner
			if p, err = partners.Add(ctx, goldbook.Partner{Name: c.name, Capital: c.capital}); err == nil {
				fmt.Printf("Added partner %s (%s)\n", p.Name, p.ID)
			}
		case act == "update" && len(args) == 1:
			var p goldbook.Partner
			if p, err = partners.Get(ctx, args[0]); err != nil {
				break
			}
			setIf(&p.Name, c.name)
			if c.capital.IsPositive() {
				p.Capital = c.capital
			}
			if err = partners.Update(ctx, p); err == nil {
				fmt.Printf("Updated partner %s\n", p.ID)
			}
		case act == "rm" && len(args) == 1:
			if err = partners.Delete(ctx, args[0]); err == nil {
				fmt.Printf("Removed partner %s\n", args[0])
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

// --- Users Command ---

type usersCmd struct {
	name     string
	password string
	role     string
}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "manage the users allowed to log in" }
func (*usersCmd) Usage() string {
	return `gbk users [list]
gbk users -name <username> -pass <password> [-role Admin|Limited] add
gbk users [-pass <password>] [-role Admin|Limited] update <id>
gbk users rm <id>

  Limited users can record trades and analyses, admins can do everything.
`
}

func (c *usersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "User name")
	f.StringVar(&c.password, "pass", "", "Password")
	f.StringVar(&c.role, "role", "", "Role: Admin or Limited, Limited for new users")
}

func (c *usersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	act, args := action(f)
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		users := a.store.Users()
		var err error
		switch {
		case act == "list":
			var list []goldbook.User
			if list, err = users.List(ctx); err != nil {
				break
			}
			var b strings.Builder
			fmt.Fprintln(&b, "| ID | User | Role | Last login |")
			fmt.Fprintln(&b, "|:---|:---|:---|:---|")
			for _, u := range list {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", u.ID, cellText(u.Username), u.Role, u.LastLogin)
			}
			printMarkdown(b.String())
		case act == "add":
			var u goldbook.User
			role := goldbook.Limited
			if c.role != "" {
				role = goldbook.Role(c.role)
			}
			if u, err = users.Add(ctx, goldbook.User{Username: c.name, Password: c.password, Role: role}); err == nil {
				fmt.Printf("Added user %s (%s)\n", u.Username, u.ID)
			}
		case act == "update" && len(args) == 1:
			var u goldbook.User
			if u, err = users.Get(ctx, args[0]); err != nil {
				break
			}
			setIf(&u.Username, c.name)
			setIf(&u.Password, c.password)
			if c.role != "" {
				u.Role = goldbook.Role(c.role)
			}
			if err = users.Update(ctx, u); err == nil {
				fmt.Printf("Updated user %s\n", u.ID)
			}
		case act == "rm" && len(args) == 1:
			if err = users.Delete(ctx, args[0]); err == nil {
				fmt.Printf("Removed user %s\n", args[0])
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

// --- Login Command ---

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "check -user and -password and record the login" }
func (*loginCmd) Usage() string {
	return `gbk -user <name> -password <password> login
`
}

func (*loginCmd) SetFlags(f *flag.FlagSet) {}

func (*loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		u, err := a.login(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Welcome %s (%s)\n", u.Username, u.Role)
		return subcommands.ExitSuccess
	})
}
