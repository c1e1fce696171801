package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"Fatigue/internal/calc/curve"
	"Fatigue/internal/calc/spectrum"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/material"
	"github.com/spf13/cobra"
)

type options struct {
	materialFile string
	method       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "fatigue",
		Short:        "Stress-life fatigue calculations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.materialFile, "material", "m", "inputs/material.yaml", "material YAML file")
	root.PersistentFlags().StringVar(&opts.method, "method", "goodman", "mean stress correction: goodman, gerber or soderberg")

	root.AddCommand(
		newLifeCmd(opts),
		newCompareCmd(opts),
		newDamageCmd(opts),
		newCurveCmd(opts),
	)
	return root
}

func (o *options) engine(out io.Writer) (*fatigue.Engine, error) {
	spec, err := material.LoadFile(o.materialFile)
	if err != nil {
		return nil, err
	}
	m := spec.Properties
	fmt.Fprintf(out, "Material: %s (Su=%g MPa, Sy=%g MPa, Se=%g MPa, sigma'f=%g MPa, b=%g)\n\n",
		spec.Name, m.UltimateStrength, m.YieldStrength, m.EnduranceLimit, m.FatigueCoefficient, m.FatigueExponent)
	return fatigue.NewEngine(m), nil
}

func newLifeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "life [--] SMAX SMIN",
		Short: "Predict cycles to failure for one stress cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			smax, smin, err := parsePair(args)
			if err != nil {
				return err
			}
			method, err := fatigue.ParseMethod(opts.method)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			e, err := opts.engine(out)
			if err != nil {
				return err
			}
			res, err := e.Predict(smax, smin, method)
			if err != nil {
				return err
			}
			printLives(out, []fatigue.LifeResult{res})
			return nil
		},
	}
}

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [--] SMAX SMIN",
		Short: "Compare the three mean stress corrections for one cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			smax, smin, err := parsePair(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			e, err := opts.engine(out)
			if err != nil {
				return err
			}
			printLives(out, e.Compare(smax, smin))
			return nil
		},
	}
}

func newDamageCmd(opts *options) *cobra.Command {
	var blockArgs []string
	var file string
	cmd := &cobra.Command{
		Use:   "damage",
		Short: "Miner's rule over a load spectrum",
		Example: `  fatigue damage --block 80,40,900000 --block 100,30,100000
  fatigue damage --spectrum spectrum.xlsx --method gerber`,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := fatigue.ParseMethod(opts.method)
			if err != nil {
				return err
			}
			blocks, err := loadBlocks(blockArgs, file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			e, err := opts.engine(out)
			if err != nil {
				return err
			}
			res, err := e.Accumulate(blocks, method)
			if err != nil {
				return err
			}
			printDamage(out, res)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&blockArgs, "block", "b", nil, "load block as smax,smin,cycles (repeatable)")
	cmd.Flags().StringVarP(&file, "spectrum", "s", "", "xlsx workbook with smax, smin, cycles columns")
	return cmd
}

func newCurveCmd(opts *options) *cobra.Command {
	var points int
	var noMean bool
	var export string
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Tabulate the S-N curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			spec, err := material.LoadFile(opts.materialFile)
			if err != nil {
				return err
			}
			data, err := fatigue.NewEngine(spec.Properties).Curve(points, !noMean)
			if err != nil {
				return err
			}
			if export != "" {
				f, err := os.Create(export)
				if err != nil {
					return err
				}
				if err := curve.WriteWorkbook(f, spec.Name, data); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %d points to %s\n", points, export)
				return nil
			}
			printCurve(out, data)
			return nil
		},
	}
	cmd.Flags().IntVarP(&points, "points", "n", 50, "number of log-spaced points between 1e3 and 1e8 cycles")
	cmd.Flags().BoolVar(&noMean, "no-mean-stress", false, "omit the R=0 curve")
	cmd.Flags().StringVarP(&export, "export", "o", "", "write an xlsx workbook instead of printing")
	return cmd
}

func parsePair(args []string) (float64, float64, error) {
	smax, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("smax: %w", err)
	}
	smin, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("smin: %w", err)
	}
	return smax, smin, nil
}

func loadBlocks(blockArgs []string, file string) ([]fatigue.Block, error) {
	var blocks []fatigue.Block
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, err := spectrum.ReadBlocks(f)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			blocks = append(blocks, fatigue.Block{Smax: r.SmaxMPa, Smin: r.SminMPa, AppliedCycles: r.AppliedCycles})
		}
	}
	for _, arg := range blockArgs {
		parts := strings.Split(arg, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("block %q: want smax,smin,cycles", arg)
		}
		var vals [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("block %q: %w", arg, err)
			}
			vals[i] = v
		}
		if vals[2] <= 0 {
			return nil, fmt.Errorf("block %q: applied cycles must be positive", arg)
		}
		blocks = append(blocks, fatigue.Block{Smax: vals[0], Smin: vals[1], AppliedCycles: vals[2]})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no load blocks given; use --block or --spectrum")
	}
	return blocks, nil
}

func printLives(out io.Writer, results []fatigue.LifeResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSMAX\tSMIN\tSM\tSA\tR\tSEQ\tCYCLES\tFOS LIFE\tFOS STRESS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\t%s\t%s\t%s\t%s\n",
			r.Method, r.Smax, r.Smin, r.MeanStress, r.StressAmplitude, r.RRatio,
			fixed(r.EquivalentStress, 1), sci(r.PredictedCycles), fixed(r.FoSOnLife, 2), fixed(r.FoSOnStress, 2))
	}
	w.Flush()
}

func printDamage(out io.Writer, res fatigue.DamageResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCK\tSMAX\tSMIN\tN APPLIED\tN FAILURE\tDAMAGE")
	for i, b := range res.Blocks {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.2e\t%s\t%.4f\n", i+1, b.Smax, b.Smin, b.AppliedCycles, sci(b.FailureCycles), b.Damage)
	}
	w.Flush()
	fmt.Fprintf(out, "\nTotal damage (%s) = %.4f\n", res.Method, res.TotalDamage)
	fmt.Fprintf(out, "Predicted blocks to failure = %s\n", fixed(res.BlocksToFailure, 2))
	fmt.Fprintf(out, "Failure predicted: %t\n", res.FailurePredicted)
}

func printCurve(out io.Writer, data fatigue.CurveData) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if data.StressR0 != nil {
		fmt.Fprintln(w, "CYCLES\tSA R=-1\tSA R=0")
	} else {
		fmt.Fprintln(w, "CYCLES\tSA R=-1")
	}
	for i, n := range data.Cycles {
		if data.StressR0 != nil {
			fmt.Fprintf(w, "%.3e\t%.1f\t%.1f\n", n, data.StressFullyReversed[i], data.StressR0[i])
		} else {
			fmt.Fprintf(w, "%.3e\t%.1f\n", n, data.StressFullyReversed[i])
		}
	}
	w.Flush()
	fmt.Fprintf(out, "\nEndurance limit: %.1f MPa\n", data.EnduranceLimit)
}

func sci(v float64) string {
	if math.IsInf(v, 1) {
		return "infinite"
	}
	return fmt.Sprintf("%.2e", v)
}

func fixed(v float64, prec int) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
