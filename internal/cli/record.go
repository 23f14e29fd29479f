package cli

import (
	"fmt"

	"prayertrack/internal/models"
)

type RecordCmd struct {
	Platform string `arg:"" help:"Platform the moment was recorded on (ios, android, telegram, web, unknown)." default:"unknown"`
}

func (c *RecordCmd) Run(ctx *Context) error {
	prayer := ctx.App.Prayer

	if prayer.IsTodayCompleted() {
		fmt.Println("Today is already complete, nothing recorded.")
		return nil
	}

	platform := models.ParsePlatform(c.Platform)
	if !prayer.RecordMoment(platform) {
		fmt.Println("Daily limit reached, nothing recorded.")
		return nil
	}

	ctx.App.Adapter.Flush()
	fmt.Printf("Recorded. Today: %d moments.\n", prayer.GetTodayCount())
	return nil
}
