package main

import "github.com/samplekit/nrpt/cmd"

func main() {
	cmd.Execute()
}
