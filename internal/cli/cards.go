package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/notary/internal/scheduler"
	"github.com/MrSnakeDoc/notary/internal/sources/cardfile"
)

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage stored cards",
	}
	cmd.AddCommand(
		newCardsListCmd(),
		newCardsClearCmd(),
		newCardsImportCmd(),
		newCardsExportCmd(),
	)
	return cmd
}

func newCardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored cards in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			cards, err := s.cards.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "#\tTEXT\tSITE\tURL")
			for i, c := range cards {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, truncate(c.Text, 60), truncate(c.SiteTitle, 30), c.URL)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d card(s) in %s store\n", len(cards), s.slot.Name())
			return err
		},
	}
}

func newCardsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.controller.RemoveAll(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "all cards removed")
			return err
		},
	}
}

func newCardsImportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import cards from a yaml or json file, skipping stored ones",
		Long: "Import cards through the capture path: empty entries and cards already\n" +
			"stored are skipped. With --replace the stored collection is overwritten\n" +
			"with the file content, in order and as is (restore from an export).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if replace {
				return replaceFromFile(cmd, s, args[0])
			}

			report, err := scheduler.NewSeeder(s.controller, s.logger).SeedFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d, duplicates %d, skipped %d\n",
				report.Imported, report.Duplicates, report.Skipped)
			return err
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite the stored cards with the file content")
	return cmd
}

func replaceFromFile(cmd *cobra.Command, s *session, path string) error {
	file, err := cardfile.NewLoader(path).Load()
	if err != nil {
		return err
	}
	cards, skipped := cardfile.NewMapper().MapCards(file)
	if err := s.cards.Replace(cmd.Context(), cards); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "replaced with %d card(s), skipped %d\n", len(cards), skipped)
	return err
}

func newCardsExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write stored cards to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cardfile.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			cards, err := s.cards.List(cmd.Context())
			if err != nil {
				return err
			}
			return cardfile.Write(cmd.OutOrStdout(), cards, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
