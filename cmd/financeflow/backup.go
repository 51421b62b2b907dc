package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/financeflow/internal/cli"
	"github.com/Veraticus/financeflow/internal/storage"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
		Long: `Create, list, restore, and delete database backups.

Imports and seeding take an automatic backup first; the newest few automatic
backups are kept.`,
		Example: `  # Back up before editing a lot by hand
  financeflow backup create --tag before-cleanup

  # List all backups
  financeflow backup list

  # Restore from a backup
  financeflow backup restore before-cleanup`,
	}

	cmd.AddCommand(createBackupCmd())
	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(restoreBackupCmd())
	cmd.AddCommand(deleteBackupCmd())

	return cmd
}

// withBackupManager opens storage and hands its backup manager to fn.
func withBackupManager(cmd *cobra.Command, fn func(*storage.BackupManager) error) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	manager, err := store.NewBackupManager()
	if err != nil {
		return fmt.Errorf("failed to create backup manager: %w", err)
	}
	return fn(manager)
}

func createBackupCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackupManager(cmd, func(manager *storage.BackupManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create backup: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s Created backup %s (%s)\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					formatFileSize(info.FileSize))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Backup name (generated from the time if empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the backup")

	return cmd
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackupManager(cmd, func(manager *storage.BackupManager) error {
				backups, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list backups: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(backups) == 0 {
					fmt.Fprintln(out, cli.SubtitleStyle.Render("No backups found."))
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
				fmt.Fprintln(w, strings.Join([]string{
					headerStyle.Render("NAME"),
					headerStyle.Render("CREATED"),
					headerStyle.Render("SIZE"),
					headerStyle.Render("EXPENSES"),
					headerStyle.Render("INCOMES"),
					headerStyle.Render("BUDGETS"),
					headerStyle.Render("TYPE"),
				}, "\t"))

				for _, b := range backups {
					typeLabel := "manual"
					if b.IsAuto {
						typeLabel = "auto"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
						cli.InfoStyle.Render(b.ID),
						formatRelativeTime(b.CreatedAt),
						formatFileSize(b.FileSize),
						b.RowCounts["expenses"],
						b.RowCounts["incomes"],
						b.RowCounts["budgets"],
						cli.SubtitleStyle.Render(typeLabel))
				}
				return w.Flush()
			})
		},
	}
}

func restoreBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "%s This will replace your current database with backup %s.\n",
					cli.WarningStyle.Render(cli.WarningIcon),
					cli.InfoStyle.Render(id))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Continue?") {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Restore cancelled."))
					return nil
				}
			}

			return withBackupManager(cmd, func(manager *storage.BackupManager) error {
				if err := manager.Restore(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to restore backup: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s Restored from backup %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(id))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <backup-id>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete backup %s?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Delete cancelled."))
				return nil
			}

			return withBackupManager(cmd, func(manager *storage.BackupManager) error {
				if err := manager.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete backup: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted backup %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(id))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
