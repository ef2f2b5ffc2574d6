package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook/cloud"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type backupCmd struct {
	dir string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export every record into a JSON backup file" }
func (*backupCmd) Usage() string {
	return `gbk backup [-dir <folder>]

  Writes PyramidsGold_Backup_<date>.json holding the transactions, employees,
  partners, permissions, users, settings and id counters.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Folder to write the backup into")
}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		path, err := a.store.WriteFile(ctx, c.dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Backup written to %s\n", path)
		return subcommands.ExitSuccess
	})
}

// --- Restore Command ---

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a JSON backup file" }
func (*restoreCmd) Usage() string {
	return `gbk restore <backup.json>

  Replaces the records present in the backup. Records absent from the file
  are left untouched; a malformed file changes nothing.
`
}

func (*restoreCmd) SetFlags(f *flag.FlagSet) {}

func (*restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		restored, err := a.store.ReadFile(ctx, f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Restored %s\n", strings.Join(restored, ", "))
		return subcommands.ExitSuccess
	})
}

// --- Cloud Commands ---

type cloudLoginCmd struct{}

func (*cloudLoginCmd) Name() string     { return "cloud-login" }
func (*cloudLoginCmd) Synopsis() string { return "connect the shop to a Google Drive account" }
func (*cloudLoginCmd) Usage() string {
	return `gbk cloud-login

  Prints the Google consent page URL, reads the code it yields and prints
  the refresh token to set as cloud.refresh_token (or GOLDBOOK_CLOUD_REFRESH_TOKEN).
`
}

func (*cloudLoginCmd) SetFlags(f *flag.FlagSet) {}

func (*cloudLoginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.Cloud.ClientID == "" {
		fmt.Fprintln(os.Stderr, "Error: cloud.client_id is not configured")
		return subcommands.ExitFailure
	}
	fmt.Printf("Open this page and paste the code:\n\n  %s\n\ncode: ", cfg.Cloud.AuthURL(uuid.NewString()))
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && code == "" {
		fmt.Fprintf(os.Stderr, "Error reading the code: %v\n", err)
		return subcommands.ExitFailure
	}
	tok, err := cfg.Cloud.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exchanging the code: %v\n", err)
		return subcommands.ExitFailure
	}
	if tok.RefreshToken == "" {
		fmt.Fprintln(os.Stderr, "Error: Google returned no refresh token")
		return subcommands.ExitFailure
	}
	fmt.Printf("refresh token: %s\n", tok.RefreshToken)
	return subcommands.ExitSuccess
}

type cloudBackupCmd struct{}

func (*cloudBackupCmd) Name() string     { return "cloud-backup" }
func (*cloudBackupCmd) Synopsis() string { return "upload the backup to Google Drive" }
func (*cloudBackupCmd) Usage() string {
	return `gbk cloud-backup

  Uploads the backup as PyramidsGold_Backup.json, replacing the previous
  one, records the backup time and mails the outcome.
`
}

func (*cloudBackupCmd) SetFlags(f *flag.FlagSet) {}

func (*cloudBackupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		status := "success"
		defer func() {
			if err := a.mailer.BackupAlert(ctx, status); err != nil {
				log.WithError(err).Warn("cannot send backup alert")
			}
		}()
		d, err := cloud.Open(ctx, a.cfg.Cloud)
		if err == nil {
			var id string
			if id, err = cloud.Backup(ctx, d, a.store); err == nil {
				fmt.Printf("Backup uploaded (%s)\n", id)
				return subcommands.ExitSuccess
			}
		}
		status = "failed"
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	})
}

type cloudRestoreCmd struct{}

func (*cloudRestoreCmd) Name() string     { return "cloud-restore" }
func (*cloudRestoreCmd) Synopsis() string { return "restore the backup kept on Google Drive" }
func (*cloudRestoreCmd) Usage() string {
	return `gbk cloud-restore
`
}

func (*cloudRestoreCmd) SetFlags(f *flag.FlagSet) {}

func (*cloudRestoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		d, err := cloud.Open(ctx, a.cfg.Cloud)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		restored, err := cloud.Restore(ctx, d, a.store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Restored %s\n", strings.Join(restored, ", "))
		return subcommands.ExitSuccess
	})
}
