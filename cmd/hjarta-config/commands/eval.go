package commands

import (
	"github.com/0xalexb/hjarta-config/data"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEvalCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <file> <expression>",
		Short: "Evaluate an expression against a document",
		Long: `Evaluate an expr-lang expression against a document and print the
result. The document is available as 'doc', and the top-level keys of a
mapping document are variables as well. get(path) and exists(path) resolve
key paths, so components resolve through their member order.`,
		Example: `  hjarta-config eval app.yaml 'server.port + 1'
  hjarta-config eval app.yaml 'get("\\.servers\\[0\\]\\.host") ?? "none"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(v, args[0])
			if err != nil {
				return err
			}

			result, err := evaluate(doc.data, args[1])
			if err != nil {
				return err
			}

			return printValue(cmd.OutOrStdout(), doc.codec, result)
		},
	}

	return cmd
}

func evaluate(d data.IndexedData, expression string) (any, error) {
	snapshot := d.Data()

	env := map[string]any{}

	if mapping, ok := snapshot.(map[string]any); ok {
		for name, value := range mapping {
			env[name] = value
		}
	}

	env["doc"] = snapshot

	program, err := expr.Compile(expression, append(pathFunctions(d), expr.Env(env))...)
	if err != nil {
		return nil, errors.Wrap(err, "compiling expression")
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating expression")
	}

	return out, nil
}

func pathFunctions(d data.IndexedData) []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			text, err := pathParam("get", params)
			if err != nil {
				return nil, err
			}

			p, err := parsePath(text)
			if err != nil {
				return nil, err
			}

			return d.Get(p, nil, data.WithRawValue())
		}, new(func(string) any)),
		expr.Function("exists", func(params ...any) (any, error) {
			text, err := pathParam("exists", params)
			if err != nil {
				return nil, err
			}

			p, err := parsePath(text)
			if err != nil {
				return nil, err
			}

			return d.Exists(p, data.IgnoreWrongType())
		}, new(func(string) bool)),
	}
}

func pathParam(name string, params []any) (string, error) {
	if len(params) != 1 {
		return "", errors.Newf("%s takes one path, got %d arguments", name, len(params))
	}

	text, ok := params[0].(string)
	if !ok {
		return "", errors.Newf("%s takes a string path, not %T", name, params[0])
	}

	return text, nil
}
