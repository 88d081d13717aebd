// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	checking        *bool
	dnsServer       *string
	indentation     *uint
	spinnerInterval *time.Duration
	workerNumber    *uint
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "hostport [flags] host:port [...]",
		Short:   "hostport parses, normalizes and vets host:port endpoint lists",
		Version: "0.1.0",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *indentation > 80 {
				return fmt.Errorf("--indent width out of range [0..80]")
			}
			if *workerNumber < 1 || *workerNumber > 10 {
				return fmt.Errorf("--workers out of range [1..10]")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return VetAndReport(context.Background(), args)
		},
	}
	// Sets up the flags.
	checking = rootCmd.PersistentFlags().Bool(
		"check", false, "vet endpoint hosts against a DNS resolver")
	dnsServer = rootCmd.PersistentFlags().String(
		"dns", "", "resolver address to vet against (default: first /etc/resolv.conf nameserver)")
	indentation = rootCmd.PersistentFlags().Uint(
		"indent", 3, "indentation width")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 5, "number of DNS lookup workers")
	return
}
