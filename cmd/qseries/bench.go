package main

import (
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/qfuncs"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
	"github.com/tuneinsight/qseries/utils/sampling"
)

type benchCase struct {
	name  string
	iters int
	run   func()
}

// benchStats holds the timings of a benchCase in microseconds.
type benchStats struct {
	name         string
	iters        int
	median, mean float64
	stddev       float64
}

func newBenchCmd() *cobra.Command {

	var scale float64
	var seed string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time the core operations and print median timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := benchCases(seed)
			if err != nil {
				return err
			}
			results, err := runBench(cases, scale)
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1, "multiplier applied to the iteration counts")
	cmd.Flags().StringVar(&seed, "seed", "qseries", "key of the PRNG generating the inputs")

	return cmd
}

func benchCases(seed string) ([]benchCase, error) {

	prng, err := sampling.NewKeyedPRNG([]byte(seed))
	if err != nil {
		return nil, err
	}

	randInt := func(digits int) bignum.Int {
		return bignum.MustParseInt(sampling.RandDigits(prng, digits, false))
	}

	randSeries := func(T int) series.Series {
		c := make([]int64, T)
		for i := range c {
			c[i] = sampling.RandInt64(prng, -9, 9)
		}
		return series.FromInts(c, T)
	}

	a36, b36 := randInt(36), randInt(36)
	a900, b900 := randInt(900), randInt(900)
	f50, g50 := randSeries(50), randSeries(50)
	f200, g200 := randSeries(200), randSeries(200)

	q := series.Q(50)
	rr := series.Zero(50)
	for n := 0; n*n < 50; n++ {
		term, err := series.QPow(n*n, 50).Div(qfuncs.Aqprod(q, q, n, 50))
		if err != nil {
			return nil, err
		}
		rr = rr.Add(term)
	}

	conv := convert.NewConverter(nil, nil)

	return []benchCase{
		{"BigInt mul 36-digit", 5000, func() { a36.Mul(b36) }},
		{"BigInt mul 900-digit", 500, func() { a900.Mul(b900) }},
		{"Series mul T=50", 1000, func() { f50.Mul(g50) }},
		{"Series mul T=200", 50, func() { f200.Mul(g200) }},
		{"etaq(1, 100)", 100, func() { _, _ = qfuncs.Etaq(series.Q(100), 1, 100) }},
		{"etaq(1, 500)", 10, func() { _, _ = qfuncs.Etaq(series.Q(500), 1, 500) }},
		{"prodmake RR T=50", 100, func() { _, _ = conv.Prodmake(rr, 50) }},
	}, nil
}

func runBench(cases []benchCase, scale float64) ([]benchStats, error) {

	results := make([]benchStats, 0, len(cases))

	for _, c := range cases {

		iters := int(float64(c.iters) * scale)
		if iters < 1 {
			iters = 1
		}

		times := make([]float64, iters)
		for i := range times {
			start := time.Now()
			c.run()
			times[i] = float64(time.Since(start).Nanoseconds()) / 1e3
		}

		median, err := stats.Median(times)
		if err != nil {
			return nil, err
		}
		mean, err := stats.Mean(times)
		if err != nil {
			return nil, err
		}
		stddev, err := stats.StandardDeviation(times)
		if err != nil {
			return nil, err
		}

		results = append(results, benchStats{name: c.name, iters: iters, median: median, mean: mean, stddev: stddev})
	}

	return results, nil
}

func printBench(w io.Writer, results []benchStats) {
	fmt.Fprintf(w, "%-28s%12s%12s%12s%8s\n", "Benchmark", "Median (us)", "Mean (us)", "Stddev", "Iters")
	for _, r := range results {
		fmt.Fprintf(w, "%-28s%12.1f%12.1f%12.1f%8d\n", r.name, r.median, r.mean, r.stddev, r.iters)
	}
}
