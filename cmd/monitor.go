package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samplekit/nrpt/progress"
)

var standaloneMonitorAddr string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the progress HTTP server standalone until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		srv := &progress.Server{Addr: standaloneMonitorAddr}
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
			os.Exit(1)
		}
		defer srv.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}

func init() {
	monitorCmd.Flags().StringVar(&standaloneMonitorAddr, "addr", ":8000", "address to serve /metrics and /healthz on")
	rootCmd.AddCommand(monitorCmd)
}
