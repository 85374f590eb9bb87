package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samplekit/nrpt/examplesampler"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/tempering"
)

var (
	betasFlag string
	swapEvery int
	nTune     int
	nSample   int
)

var nrptCmd = &cobra.Command{
	Use:   "nrpt",
	Short: "Run a full TUNE/SAMPLE/DONE NRPT tempering run over a replica ladder",
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.New(os.Stderr, "nrpt: ", log.LstdFlags)

		srv := startMonitorIfRequested()
		if srv != nil {
			defer srv.Stop()
		}

		betas, err := parseBetas(betasFlag)
		if err != nil {
			logger.Fatalf("parsing --betas: %v", err)
		}

		rng, err := rand.NewGenerator(params.seed)
		if err != nil {
			logger.Fatalf("building rng: %v", err)
		}

		mean := make([]float64, params.dim)
		model := &examplesampler.GaussianModel{Mean: mean, Std: params.std}

		replicas := make([]*tempering.Replica, len(betas))
		for i, b := range betas {
			samp := examplesampler.NewSampler(params.dim, params.step)
			samp.SetBeta(b)
			_, state, err := samp.InitialStep(rng, model)
			if err != nil {
				logger.Fatalf("initializing replica %d: %v", i, err)
			}
			replicas[i] = &tempering.Replica{Samp: samp, Beta: b, State: state}
		}

		opts := tempering.Options{
			SwapEvery: swapEvery,
			NTune:     nTune,
			NSample:   nSample,
			ChainType: params.chainType,
		}

		result, err := tempering.Run(rng, model, replicas, opts)
		if err != nil {
			logger.Fatalf("nrpt run failed: %v", err)
		}

		fmt.Printf("final ladder:  %v\n", result.FinalLadder)
		fmt.Printf("diagnostic 2*Lambda(1): %.6f\n", result.Diagnostic)
		for beta, chain := range result.Chains {
			c := chain.(*examplesampler.Chain)
			fmt.Printf("beta=%.4f samples=%d acceptance=%.3f\n", beta, len(c.Samples), c.AcceptanceRate)
		}
	},
}

func parseBetas(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	betas := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		betas = append(betas, v)
	}
	return betas, nil
}

func init() {
	nrptCmd.Flags().StringVar(&betasFlag, "betas", "1.0,0.5,0.0", "comma-separated initial beta ladder, strictly decreasing from 1.0 to 0.0")
	nrptCmd.Flags().IntVar(&swapEvery, "swap-every", 1, "attempt a swap sweep every N DEO iterations")
	nrptCmd.Flags().IntVar(&nTune, "n-tune", 4, "tuning budget; the tune phase runs Maxround = floor(log2(n-tune)) rounds")
	nrptCmd.Flags().IntVar(&nSample, "n-sample", 1000, "DEO iterations during the sample phase")
	rootCmd.AddCommand(nrptCmd)
}
