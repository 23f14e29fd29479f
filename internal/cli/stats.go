package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	stats := ctx.App.Stats.ComputeStats()

	fmt.Printf("Total moments:  %d\n", stats.TotalMoments)
	fmt.Printf("Current streak: %d days\n", stats.CurrentStreak)
	fmt.Printf("Days completed: %d\n", stats.DaysCompleted)
	if stats.LastActivity != nil {
		fmt.Printf("Last activity:  %s\n", *stats.LastActivity)
	} else {
		fmt.Println("Last activity:  never")
	}
	return nil
}
