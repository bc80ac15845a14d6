/*
 * main.go, part of electrolens.
 *
 * Copyright 2024 The electrolens authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//electrolens builds, checks and shows ElectroLens plots described by YAML plans.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/ray38/electrolens"
	"github.com/ray38/electrolens/histo"
	"github.com/ray38/electrolens/plan"
	"github.com/ray38/electrolens/viewer"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	quiet     bool
	output    string
	staticDir string
	dryRun    bool
	column    string
	low       float64
	up        float64
	bins      int
	pngFile   string
	topology  string
	columns   []string
	frameCol  string
	stfHeader []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "electrolens:", err)
		os.Exit(1)
	}
}

//newRootCmd returns the command tree. Defining the flags also resets them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "electrolens",
		Short:         "build and show ElectroLens plots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			electrolens.SuppressMessages(quiet)
			if quiet {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "don't print warnings or information")

	buildCmd := &cobra.Command{
		Use:   "build [plan.yaml]",
		Short: "build the configuration document of a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  buildPlan,
	}
	buildCmd.Flags().StringVarP(&output, "output", "o", "", "configuration file (default: the plan name with .json extension)")

	validateCmd := &cobra.Command{
		Use:   "validate [plan.yaml]",
		Short: "check a plan and summarize the plot it gives",
		Args:  cobra.ExactArgs(1),
		RunE:  validatePlan,
	}

	showCmd := &cobra.Command{
		Use:   "show [plan.yaml|configuration.json]",
		Short: "show a plan or a configuration file in the browser",
		Args:  cobra.ExactArgs(1),
		RunE:  show,
	}
	showCmd.Flags().StringVar(&staticDir, "static", "", "renderer directory (default: $"+viewer.StaticEnv+")")
	showCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the document instead of showing it")

	densityCmd := &cobra.Command{
		Use:   "density [data.csv]",
		Short: "histogram of a density column, to choose the density cutoffs",
		Args:  cobra.ExactArgs(1),
		RunE:  density,
	}
	densityCmd.Flags().StringVar(&column, "column", electrolens.DefaultDensityProperty, "density column")
	densityCmd.Flags().Float64Var(&low, "low", electrolens.DefaultDensityLowerLimit, "lower limit")
	densityCmd.Flags().Float64Var(&up, "up", electrolens.DefaultDensityUpperLimit, "upper limit")
	densityCmd.Flags().IntVar(&bins, "bins", 9, "number of bins (logarithmic)")
	densityCmd.Flags().StringVar(&pngFile, "png", "", "also draw the histogram to this file")

	convertCmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "convert XYZ, PDB and STF files to renderer CSV files, or to STF",
		Args:  cobra.ExactArgs(2),
		RunE:  convert,
	}
	convertCmd.Flags().StringVar(&topology, "topology", "", "structure file with the atoms of an STF trajectory")
	convertCmd.Flags().StringSliceVar(&columns, "columns", []string{"x", "y", "z"}, "columns of the CSV file")
	convertCmd.Flags().StringVar(&frameCol, "frame-column", electrolens.DefaultFrameColumn, "frame column for multi-frame inputs")
	convertCmd.Flags().StringSliceVar(&stfHeader, "header", nil, "key=value pairs for the header of STF output")
	convertCmd.Flags().StringVar(&configFile, "config", "", "also save the configuration of a one-view plot of the CSV output")

	rootCmd.AddCommand(buildCmd, validateCmd, showCmd, densityCmd, convertCmd)
	return rootCmd
}

func buildPlan(cmd *cobra.Command, args []string) error {
	P, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	plot, err := P.Build()
	if err != nil {
		return err
	}
	out := output
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
	}
	return plot.SaveConfiguration(out)
}

func validatePlan(cmd *cobra.Command, args []string) error {
	P, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	plot, err := P.Build()
	if err != nil {
		return err
	}
	conf, err := plot.Configuration()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEW\tTYPE\tMOLECULAR\tSPATIALLY RESOLVED\tDIMENSIONS")
	for i, v := range conf.Views {
		if v.View != nil {
			fmt.Fprintf(w, "%d\t%s\t%s vs %s\t\t\n", i, v.View.ViewType, v.View.PlotX, v.View.PlotY)
			continue
		}
		d := v.SystemDimension
		fmt.Fprintf(w, "%d %s\t%s\t%s\t%s\t%.3g x %.3g x %.3g\n", i, v.MoleculeName, v.ViewType,
			describe(v.MoleculeData), describe(v.SpatiallyResolvedData), d.X, d.Y, d.Z)
	}
	return w.Flush()
}

func describe(d *electrolens.DataBlock) string {
	switch {
	case d == nil:
		return "-"
	case d.DataFilename != "":
		return d.DataFilename
	}
	return fmt.Sprintf("%d records", len(d.Data))
}

func show(cmd *cobra.Command, args []string) error {
	var plot *electrolens.Plot
	var err error
	if strings.EqualFold(filepath.Ext(args[0]), ".json") {
		plot, err = electrolens.NewPlot(electrolens.WithConfigurationFile(args[0]))
	} else {
		var P *plan.Plan
		P, err = plan.Load(args[0])
		if err == nil {
			plot, err = P.Build()
		}
	}
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if dryRun {
		rec := new(viewer.Recorder)
		if err := plot.Show(ctx, rec); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(rec.Last()))
		return err
	}
	var B *viewer.Browser
	if staticDir != "" {
		B = viewer.NewBrowser(staticDir)
	} else if B, err = viewer.NewBrowserFromEnv(); err != nil {
		return err
	}
	B.Title = filepath.Base(args[0])
	return plot.Show(ctx, B)
}

func density(cmd *cobra.Command, args []string) error {
	values, err := electrolens.ReadColumn(args[0], column)
	if err != nil {
		return err
	}
	dividers, err := histo.LogDividers(low, up, bins)
	if err != nil {
		return err
	}
	H, err := histo.NewData(dividers, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d values, %d inside [%g, %g)\n%s\n", column, len(values), H.Total(), low, up, H)
	if pngFile == "" {
		return nil
	}
	H.Normalize()
	return errors.Wrap(H.Plot(filepath.Base(args[0]), column, pngFile), "density plot")
}
