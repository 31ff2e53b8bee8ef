// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfvri/ran-beam-sampler/pkg/manager"
	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/nfvri/ran-beam-sampler/pkg/statistics"
	"github.com/nfvri/ran-beam-sampler/pkg/store/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ran-beam-sampler",
		Short:         "Samples the SNR and SINR of a beamformed link next to an interfering one",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().String("config", "", "run configuration file (YAML)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newRunCommand(), newCoverageCommand(), newReportCommand())
	return cmd
}

// loadModel merges defaults, the configuration file and the command line flags
func loadModel(cmd *cobra.Command) (*model.Model, error) {
	v := viper.New()
	model.SetDefaults(v)

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", configFile, err)
		}
	}

	bindings := map[string]string{
		"logLevel":  "log-level",
		"scenario":  "scenario",
		"simTime":   "sim-time",
		"jobID":     "job-id",
		"outputDir": "output-dir",
		"plotFile":  "plot",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	m := &model.Model{}
	if err := model.Unmarshal(v, m); err != nil {
		return nil, err
	}
	return m, nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario", "", "scenario name: L-Room, ParkingLot-old, ParkingLotCars")
	cmd.Flags().Duration("sim-time", 0, "simulated duration of the run")
	cmd.Flags().String("job-id", "", "job identifier, generated when empty")
	cmd.Flags().String("output-dir", "", "directory of the trace, plot and metrics files")
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a sampling job and write its trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(cmd)
			if err != nil {
				return err
			}
			mgr, err := manager.NewManager(m)
			if err != nil {
				return err
			}
			defer mgr.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			summary, err := mgr.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "trace: %s\n", manager.TracePath(m))
			printSummary(cmd, summary)
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().String("plot", "", "file to plot the trace to, relative to the output directory")
	return cmd
}

func newCoverageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Solve for the boresight range at which the serving link reaches a reference SNR",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(cmd)
			if err != nil {
				return err
			}
			refSnr, _ := cmd.Flags().GetFloat64("ref-snr")
			mgr, err := manager.NewManager(m)
			if err != nil {
				return err
			}
			defer mgr.Close()
			distance, err := mgr.ServingRange(refSnr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: SNR %.2f dB at %.2f m on boresight\n", m.Scenario, refSnr, distance)
			return nil
		},
	}
	cmd.Flags().String("scenario", "", "scenario name")
	cmd.Flags().Float64("ref-snr", 0, "reference SNR in dB")
	return cmd
}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <trace file>",
		Short: "Print the statistics of an existing trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				lvl, err := log.ParseLevel(level)
				if err != nil {
					return err
				}
				log.SetLevel(lvl)
			}
			samples, err := trace.ReadFile(args[0])
			if err != nil {
				return err
			}
			threshold, _ := cmd.Flags().GetFloat64("outage-threshold")
			summary, err := statistics.Summarize(samples, threshold)
			if err != nil {
				return err
			}
			if plotFile, _ := cmd.Flags().GetString("plot"); plotFile != "" {
				if err := statistics.PlotTrace(samples, args[0], plotFile); err != nil {
					return err
				}
			}
			if histFile, _ := cmd.Flags().GetString("histogram"); histFile != "" {
				if err := statistics.PlotSinrDistribution(samples, 20, histFile); err != nil {
					return err
				}
			}
			printSummary(cmd, summary)
			return nil
		},
	}
	cmd.Flags().Float64("outage-threshold", statistics.DefaultOutageThresholdDb, "SINR in dB below which a sample is an outage")
	cmd.Flags().String("plot", "", "file to plot the trace to")
	cmd.Flags().String("histogram", "", "file to plot the SINR distribution to")
	return cmd
}

func printSummary(cmd *cobra.Command, s statistics.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "samples: %d\n", s.Count)
	fmt.Fprintf(out, "snr[dB]: mean %.3f std %.3f\n", s.SnrMean, s.SnrStdDev)
	fmt.Fprintf(out, "sinr[dB]: mean %.3f std %.3f min %.3f p5 %.3f median %.3f max %.3f\n",
		s.SinrMean, s.SinrStdDev, s.SinrMin, s.SinrP5, s.SinrMedian, s.SinrMax)
	fmt.Fprintf(out, "outage: %.2f%%\n", 100*s.Outage)
}
