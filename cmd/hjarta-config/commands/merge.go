package commands

import (
	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-config/config/parser/json"
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMergeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <file> <patch>",
		Short: "Apply a merge patch to a document",
		Long: `Apply a JSON merge patch (RFC 7386) to a document and write it back.
The patch may be in any supported format; a null value removes a key.
With --json-patch the patch is a list of RFC 6902 operations instead.
For a component, --member selects the member to patch.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			memberName, _ := cmd.Flags().GetString("member")

			target, err := doc.member(memberName)
			if err != nil {
				return err
			}

			patch, err := loadPatch(args[1])
			if err != nil {
				return err
			}

			operations, _ := cmd.Flags().GetBool("json-patch")

			merged, err := applyPatch(target.data, patch, operations)
			if err != nil {
				return err
			}

			target.data = merged

			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return doc.commit(cmd.OutOrStdout(), dryRun)
		},
	}

	cmd.Flags().String("member", "", "component member to patch, by filename or alias")
	cmd.Flags().Bool("json-patch", false, "read the patch as RFC 6902 operations")
	cmd.Flags().Bool("dry-run", false, "print the change instead of writing it")

	return cmd
}

// loadPatch reads a patch document and returns it as JSON.
func loadPatch(path string) ([]byte, error) {
	codec, err := config.DefaultCodecs().ForFile(path)
	if err != nil {
		return nil, err
	}

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return nil, err
	}

	src, err := fetcher.Fetch()
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decode(src)
	if err != nil {
		return nil, errors.Wrapf(err, "patch %s", path)
	}

	return jsonparser.NewParser().Encode(raw)
}

//nolint:ireturn // the container type depends on the patched document
func applyPatch(d data.ConfigData, patch []byte, operations bool) (data.ConfigData, error) {
	codec := jsonparser.NewParser()

	doc, err := config.Encode(codec, d)
	if err != nil {
		return nil, err
	}

	var out []byte

	if operations {
		ops, err := jsonpatch.DecodePatch(patch)
		if err != nil {
			return nil, errors.Wrap(err, "decoding json patch")
		}

		out, err = ops.Apply(doc)
		if err != nil {
			return nil, errors.Wrap(err, "applying json patch")
		}
	} else {
		out, err = jsonpatch.MergePatch(doc, patch)
		if err != nil {
			return nil, errors.Wrap(err, "applying merge patch")
		}
	}

	raw, err := codec.Decode(out)
	if err != nil {
		return nil, err
	}

	merged, ok := data.NewIndexed(raw)
	if !ok {
		return nil, errors.Wrapf(config.ErrNotIndexed, "patched document is %T", raw)
	}

	return merged, nil
}
