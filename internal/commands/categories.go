package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerlight-dev/ledgerlight/internal/config"
	"github.com/ledgerlight-dev/ledgerlight/internal/store"
)

func newCategoriesCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(filepath.Join(root, config.FileName))
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DatabasePath(root))
			if err != nil {
				return err
			}
			defer st.Close()

			cats, err := st.Categories()
			if err != nil {
				return err
			}
			for _, c := range cats {
				cmd.Printf("%4d  %-8s %s\n", c.ID, c.Type, c.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root directory")

	return cmd
}
