package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerlight-dev/ledgerlight/internal/auditlog"
	"github.com/ledgerlight-dev/ledgerlight/internal/categoriser"
	"github.com/ledgerlight-dev/ledgerlight/internal/colmap"
	"github.com/ledgerlight-dev/ledgerlight/internal/config"
	"github.com/ledgerlight-dev/ledgerlight/internal/importer"
	"github.com/ledgerlight-dev/ledgerlight/internal/model"
	"github.com/ledgerlight-dev/ledgerlight/internal/profile"
	"github.com/ledgerlight-dev/ledgerlight/internal/store"
)

func newImportCommand() *cobra.Command {
	var root string
	var saveProfile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import and categorise statement CSVs from the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, saveProfile)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root directory")
	cmd.Flags().StringVar(&saveProfile, "save-profile", "", "save the inferred column mapping under this profile name")

	return cmd
}

func runImport(cmd *cobra.Command, root, saveProfile string) error {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return err
	}

	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("No statement files to import.")
		return nil
	}

	st, err := store.Open(cfg.DatabasePath(root))
	if err != nil {
		return err
	}
	defer st.Close()

	profiles := profile.NewStore(cfg.ProfilesPath(root))
	prompter := newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	cat := categoriser.New(st, prompter, categoriser.Thresholds{
		AutoAccept:    cfg.Thresholds.AutoAccept,
		RecurrenceMin: cfg.Thresholds.RecurrenceMin,
	})

	imported := 0
	for _, file := range files {
		entry, err := importFile(cmd, st, cat, profiles, cfg, file, saveProfile)
		if err != nil {
			// Unresolved mappings and parse failures block this file only;
			// the batch continues.
			cmd.PrintErrf("%s: %v\n", file.Name, err)
			continue
		}

		if err := importer.MarkProcessed(root, file.Name); err != nil {
			return err
		}
		if err := auditlog.Append(root, []auditlog.Entry{entry}); err != nil {
			return err
		}
		imported++
		cmd.Printf("%s: %d rows, %d categorised, %d declined, %d recurring\n",
			file.Name, entry.Rows, entry.Categorised, entry.Declined, entry.Recurring)
	}

	if imported > 0 {
		if err := st.Backup(time.Now()); err != nil {
			return err
		}
	}
	return nil
}

func importFile(cmd *cobra.Command, st *store.Store, cat *categoriser.Categoriser, profiles *profile.Store, cfg *config.Config, file importer.FileInfo, saveProfile string) (auditlog.Entry, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return auditlog.Entry{}, fmt.Errorf("opening statement: %w", err)
	}
	header, sample, err := importer.ReadHeader(f)
	f.Close()
	if err != nil {
		return auditlog.Entry{}, err
	}

	name, mapping := profile.Match(header, profiles.Load(), cfg.Thresholds.ProfileMatch)
	if mapping != nil {
		cmd.Printf("%s: using saved profile %q\n", file.Name, name)
	} else {
		mapping = colmap.Guess(header, sample)
		if !colmap.Complete(mapping) {
			return auditlog.Entry{}, fmt.Errorf("unresolved column mapping: missing %v", colmap.Missing(mapping))
		}
		if saveProfile != "" {
			if err := profiles.Add(saveProfile, header, mapping); err != nil {
				return auditlog.Entry{}, err
			}
		}
	}

	f, err = os.Open(file.Path)
	if err != nil {
		return auditlog.Entry{}, fmt.Errorf("reopening statement: %w", err)
	}
	defer f.Close()

	rows, err := importer.ParseStatement(f, mapping)
	if err != nil {
		return auditlog.Entry{}, err
	}

	entry := auditlog.Entry{Timestamp: time.Now(), File: file.Name, Rows: len(rows)}
	for _, row := range rows {
		res, err := cat.Classify(row.Description, row.Amount)
		if err != nil {
			return auditlog.Entry{}, err
		}

		typ := model.CategoryExpense
		if row.Amount.IsPositive() {
			typ = model.CategoryIncome
		}
		if _, err := st.InsertTransaction(model.Transaction{
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			CategoryID:  res.CategoryID,
			Type:        typ,
			Recurring:   res.Recurring,
		}); err != nil {
			return auditlog.Entry{}, err
		}

		if res.Categorised {
			entry.Categorised++
		} else {
			entry.Declined++
		}
		if res.Recurring {
			entry.Recurring++
		}
	}
	return entry, nil
}
