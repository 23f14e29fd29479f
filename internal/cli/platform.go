package cli

import (
	"fmt"
	"runtime"
	"time"

	"prayertrack/internal/models"
)

type PlatformCmd struct {
	Set string `help:"Store a detected platform (ios, android, telegram, web, unknown)." optional:""`
}

func (c *PlatformCmd) Run(ctx *Context) error {
	prayer := ctx.App.Prayer

	if c.Set != "" {
		prayer.SavePlatformInfo(models.ParsePlatform(c.Set), runtime.GOOS+"/"+runtime.GOARCH)
		ctx.App.Adapter.Flush()
	}

	info := prayer.GetPlatformInfo()
	if info == nil {
		fmt.Println("No platform recorded.")
		return nil
	}

	detected := time.UnixMilli(info.DetectedAt).Format(time.RFC3339)
	fmt.Printf("Platform:    %s\n", info.Platform)
	fmt.Printf("Detected at: %s\n", detected)
	fmt.Printf("User agent:  %s\n", info.UserAgent)
	return nil
}
