package commands

import (
	"log/slog"

	"github.com/0xalexb/hjarta-config/data"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSetCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Store a value at a path",
		Long: `Store a value at a path and write the document back. The value is
parsed as YAML, so '8080', 'true' and '{a: 1}' keep their types; use --string
to store the text as is. Missing intermediate mappings are created unless
--no-create is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			p, err := parsePath(args[1])
			if err != nil {
				return err
			}

			literal, _ := cmd.Flags().GetBool("string")

			value, err := parseValue(args[2], literal)
			if err != nil {
				return err
			}

			var opts []data.Option
			if noCreate, _ := cmd.Flags().GetBool("no-create"); noCreate {
				opts = append(opts, data.WithoutCreate())
			}

			if err := doc.data.Modify(p, value, opts...); err != nil {
				return err
			}

			slog.Debug("value stored", "file", args[0], "path", args[1])

			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return doc.commit(cmd.OutOrStdout(), dryRun)
		},
	}

	cmd.Flags().Bool("string", false, "store the value as a string")
	cmd.Flags().Bool("no-create", false, "fail instead of creating missing keys")
	cmd.Flags().Bool("dry-run", false, "print the change instead of writing it")

	return cmd
}

func newDeleteCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <file> <path>",
		Aliases: []string{"rm"},
		Short:   "Remove the value at a path",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			p, err := parsePath(args[1])
			if err != nil {
				return err
			}

			if missingOK, _ := cmd.Flags().GetBool("missing-ok"); missingOK {
				err = doc.data.Unset(p)
			} else {
				err = doc.data.Delete(p)
			}

			if err != nil {
				return err
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return doc.commit(cmd.OutOrStdout(), dryRun)
		},
	}

	cmd.Flags().Bool("missing-ok", false, "succeed when the path does not resolve")
	cmd.Flags().Bool("dry-run", false, "print the change instead of writing it")

	return cmd
}
