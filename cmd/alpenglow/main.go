// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command alpenglow is a thin driver for manually inspecting the
// consensus state machine — out of scope for protocol semantics (spec.md
// §1), mirroring cmd/consensus's subcommand registration style.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/alpenglow/config"
	"github.com/luxfi/alpenglow/types"
)

var rootCmd = &cobra.Command{
	Use:   "alpenglow",
	Short: "Alpenglow consensus state-machine driver",
	Long: `alpenglow drives the Alpenglow consensus state machine for manual
inspection: advancing logical time and checking the testable properties
of spec.md §8 against a small reference scenario.`,
}

func main() {
	rootCmd.AddCommand(stepCmd(), checkCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func stepCmd() *cobra.Command {
	var ticks uint64
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Advance the reference scenario's logical clock and print the resulting state summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := referenceScenario()
			s.AdvanceTime(types.Timestamp(ticks))
			fmt.Printf("slot=%d global_time=%d certificates=%d skip_certs=%d ledger=%d\n",
				s.CurrentSlot, s.GlobalTime, len(s.Certificates), len(s.SkipCerts), len(s.Ledger))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&ticks, "ticks", config.Reference().TicksPerSlot, "logical ticks to advance")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the fast-path happy-path scenario and report the §8 testable properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}
