package commands

import (
	"fmt"

	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type keyLister interface {
	Keys(opts ...data.Option) ([]string, error)
}

func newGetCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print the value at a path",
		Long: `Print the value at a path. Strings and numbers are printed as text,
mappings and sequences in the format of the document.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return printValue(cmd.OutOrStdout(), doc.codec, doc.data.Data())
			}

			p, err := parsePath(args[1])
			if err != nil {
				return err
			}

			var value any

			if cmd.Flags().Changed("default") {
				raw, _ := cmd.Flags().GetString("default")

				def, err := parseValue(raw, false)
				if err != nil {
					return err
				}

				value, err = doc.data.Get(p, def, data.WithRawValue())
				if err != nil {
					return err
				}
			} else {
				value, err = doc.data.Retrieve(p, data.WithRawValue())
				if err != nil {
					return err
				}
			}

			return printValue(cmd.OutOrStdout(), doc.codec, value)
		},
	}

	cmd.Flags().String("default", "", "value printed when the path does not resolve, parsed as YAML")

	return cmd
}

func newExistsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <file> <path>",
		Short: "Report whether a path resolves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			p, err := parsePath(args[1])
			if err != nil {
				return err
			}

			var opts []data.Option
			if ignore, _ := cmd.Flags().GetBool("ignore-wrong-type"); ignore {
				opts = append(opts, data.IgnoreWrongType())
			}

			found, err := doc.data.Exists(p, opts...)
			if err != nil {
				return err
			}

			if found {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("true"))
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), color.RedString("false"))
			}

			return err
		},
	}

	cmd.Flags().Bool("ignore-wrong-type", false, "report false instead of failing on a value of the wrong type")

	return cmd
}

func newKeysCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <file> [path]",
		Short: "List the keys of a mapping",
		Long: `List the keys of a mapping. With --recursive every nested key is
listed as a key path.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			var target any = doc.data

			if len(args) == 2 {
				p, err := parsePath(args[1])
				if err != nil {
					return err
				}

				target, err = doc.data.Retrieve(p)
				if err != nil {
					return err
				}
			}

			lister, ok := target.(keyLister)
			if !ok {
				return errors.Wrapf(ErrNotMapping, "%T", target)
			}

			keys, err := lister.Keys(keyOptions(cmd)...)
			if err != nil {
				return err
			}

			for _, key := range keys {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolP("recursive", "r", false, "list nested keys as key paths")
	cmd.Flags().Bool("endpoints", false, "with --recursive, list only keys that do not hold a mapping")
	cmd.Flags().Bool("non-strict", false, "with --recursive, list a cyclic reference instead of failing")

	return cmd
}

func keyOptions(cmd *cobra.Command) []data.Option {
	var opts []data.Option

	if recursive, _ := cmd.Flags().GetBool("recursive"); recursive {
		opts = append(opts, data.Recursive())
	}

	if endpoints, _ := cmd.Flags().GetBool("endpoints"); endpoints {
		opts = append(opts, data.EndPointOnly())
	}

	if nonStrict, _ := cmd.Flags().GetBool("non-strict"); nonStrict {
		opts = append(opts, data.NonStrict())
	}

	return opts
}
