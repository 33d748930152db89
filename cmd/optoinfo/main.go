// Command optoinfo inspects the opto limiter offline with synthetic
// signals.
//
// Usage:
//
//	optoinfo curve [--peak-reduction=0.5] [--gain=0] [--mode=all]
//	optoinfo meter [--freq=1000] [--level-db=0] [--seconds=1] [--mode=9] [--ms] [--bypass]
//	optoinfo saturation [--freq=5600] [--level=0.9] [--oversampling=4]
//
// Examples:
//
//	optoinfo curve --mode=limit --peak-reduction=0.8
//	optoinfo meter --level-db=-6 --ms
//	optoinfo saturation --oversampling=8
package main

import (
	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`
	Verbose bool             `help:"Log processor lifecycle events to stderr"`

	Curve      CurveCmd      `cmd:"" help:"Print the static transfer curve of the gain computer"`
	Meter      MeterCmd      `cmd:"" help:"Run a sine through the processor and print the final meters"`
	Saturation SaturationCmd `cmd:"" help:"Compare THD and aliasing of the J-FET stage with and without oversampling"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("optoinfo"),
		kong.Description("Offline inspection of the opto limiter"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	err := ctx.Run(cli)
	if err != nil {
		PrintError(err.Error())
	}

	ctx.FatalIfErrorf(err)
}
