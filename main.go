package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"prayertrack/internal/cli"
	"prayertrack/internal/di"
	"prayertrack/internal/structures"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Verbose console logging."`

	Record   cli.RecordCmd   `cmd:"" help:"Record a prayer moment for today."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's progress." default:"1"`
	Day      cli.DayCmd      `cmd:"" help:"Show one day's moments."`
	Month    cli.MonthCmd    `cmd:"" help:"Show the month calendar."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show aggregate statistics."`
	Platform cli.PlatformCmd `cmd:"" help:"Show or store the detected platform."`
	Sync     cli.SyncCmd     `cmd:"" help:"Reconcile the storage replicas once."`
	Clear    cli.ClearCmd    `cmd:"" help:"Erase all recorded data."`
	Daemon   cli.DaemonCmd   `cmd:"" help:"Run the background sync daemon."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("prayertrack"),
		kong.Description("Local prayer-habit tracker: seven moments a day."),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	app, err := di.InitApp(&structures.CliFlags{
		ConfigPath: CLI.Config,
		DebugMode:  CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := ctx.Run(&cli.Context{App: app}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
