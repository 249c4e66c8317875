package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/tuneinsight/qseries/config"
	"github.com/tuneinsight/qseries/engine"
	"github.com/tuneinsight/qseries/logging"
	"github.com/tuneinsight/qseries/series"
)

// ErrParse is returned for malformed command line arguments.
var ErrParse = errors.New("cannot parse argument")

type cliContext struct {
	trunc int
	terms int
}

func newRootCmd() *cobra.Command {

	ctx := &cliContext{}

	root := &cobra.Command{
		Use:           "qseries",
		Short:         "exact q-series computations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntVar(&ctx.trunc, "trunc", 0, "truncation degree T (default from QSERIES_TRUNC)")
	root.PersistentFlags().IntVar(&ctx.terms, "terms", 0, "number of series terms shown (default from QSERIES_DISPLAY_TERMS)")

	root.AddCommand(
		newCallCmd(ctx),
		newHelpCmd(),
		newPartitionsCmd(ctx),
		newBenchCmd(),
	)

	return root
}

// newEngine returns an engine configured from the environment and the command line flags.
func (ctx *cliContext) newEngine() (*engine.Engine, error) {

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if ctx.trunc != 0 {
		cfg.Trunc = ctx.trunc
	}

	if ctx.terms != 0 {
		cfg.DisplayTerms = ctx.terms
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.FromConfig(cfg.LogConfig))
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}

	return engine.New(cfg, log), nil
}

func newCallCmd(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "call <builtin> [args...]",
		Short: "evaluate a builtin",
		Long: `
Evaluates a builtin on integer, series and list arguments and prints the result.

Arguments are integers, q, q^k, or bracketed comma separated lists of them:

   qseries call etaq 1 20
   qseries call qbin q^2 2 4 20
   qseries call findnonhomcombo q^3 [q] [3] 0
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			e, err := ctx.newEngine()
			if err != nil {
				return err
			}

			vals := make([]engine.Value, len(args)-1)
			for i, arg := range args[1:] {
				if vals[i], err = parseValue(arg, e.Trunc()); err != nil {
					return err
				}
			}

			res, err := e.Call(args[0], vals...)
			if err != nil {
				return err
			}

			if out := e.Render(res); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			return nil
		},
	}
}

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins [name]",
		Short: "list the builtins or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			w := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(w, strings.Join(engine.Names(), ", "))
				return nil
			}

			usage, doc, ok := engine.Help(args[0])
			if !ok {
				return errors.Wrapf(engine.ErrUnknownBuiltin, "%q", args[0])
			}

			fmt.Fprintf(w, "%s: %s\n", usage, doc)

			return nil
		},
	}
}

func newPartitionsCmd(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "partitions <n>",
		Short: "print the number of partitions p(n)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(ErrParse, "%q", args[0])
			}

			e, err := ctx.newEngine()
			if err != nil {
				return err
			}

			res, err := e.Call("partitions", engine.IntValue(n))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), e.Render(res))

			return nil
		},
	}
}

// parseValue parses an integer, q, q^k, or a bracketed list of those.
// A list of integers is an IntList, a list with any series is a SeriesList.
func parseValue(arg string, T int) (engine.Value, error) {

	arg = strings.TrimSpace(arg)

	if strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]") {

		inner := strings.TrimSpace(arg[1 : len(arg)-1])
		if inner == "" {
			return engine.IntList{}, nil
		}

		fields := strings.Split(inner, ",")
		vals := make([]engine.Value, len(fields))
		allInts := true
		for i, f := range fields {
			v, err := parseScalar(strings.TrimSpace(f), T)
			if err != nil {
				return nil, err
			}
			if _, ok := v.(engine.IntValue); !ok {
				allInts = false
			}
			vals[i] = v
		}

		if allInts {
			list := make(engine.IntList, len(vals))
			for i := range vals {
				list[i] = int(vals[i].(engine.IntValue))
			}
			return list, nil
		}

		list := make(engine.SeriesList, len(vals))
		for i := range vals {
			switch v := vals[i].(type) {
			case engine.SeriesValue:
				list[i] = v.Series
			case engine.IntValue:
				list[i] = series.FromInts([]int64{int64(v)}, T)
			}
		}
		return list, nil
	}

	return parseScalar(arg, T)
}

func parseScalar(arg string, T int) (engine.Value, error) {

	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return engine.IntValue(n), nil
	}

	if arg == "q" {
		return engine.SeriesValue{Series: series.Q(T)}, nil
	}

	if strings.HasPrefix(arg, "q^") {
		k, err := strconv.Atoi(arg[2:])
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "%q", arg)
		}
		return engine.SeriesValue{Series: series.QPow(k, T)}, nil
	}

	return nil, errors.Wrapf(ErrParse, "%q", arg)
}
