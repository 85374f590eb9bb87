package cmd

// runParams collects the flags shared across the root command and its
// nrpt/parallel subcommands - the struct the old code referred to as
// startupParams without ever defining it.
type runParams struct {
	seed      int64
	verbose   bool
	cfgFile   string
	chainType string
	progress  bool

	dim  int
	step float64
	std  float64

	discardInitial int
	thinning       int
	n              int
}

var params = runParams{
	seed:      1,
	chainType: "default",
	dim:       1,
	step:      0.5,
	std:       1.0,
	thinning:  1,
	n:         1000,
}
