package cli

import (
	"fmt"
	"time"
)

type DayCmd struct {
	Date string `arg:"" help:"Day to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	key, err := resolveDayKey(c.Date, time.Now)
	if err != nil {
		return err
	}

	rec := ctx.App.Prayer.GetDay(key)
	fmt.Printf("%s: %d moments", rec.Date, rec.Count)
	if rec.Completed {
		fmt.Print(" (completed)")
	}
	fmt.Println()

	for _, m := range rec.Moments {
		at := time.UnixMilli(m.Timestamp).Format("15:04:05")
		fmt.Printf("  %s  %-8s  %ds\n", at, m.Platform, m.Duration)
	}
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	prayer := ctx.App.Prayer
	fmt.Printf("%s: %d moments", prayer.TodayKey(), prayer.GetTodayCount())
	if prayer.IsTodayCompleted() {
		fmt.Print(" (completed)")
	}
	fmt.Println()
	return nil
}
