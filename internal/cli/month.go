package cli

import (
	"fmt"
	"strings"
	"time"
)

type MonthCmd struct {
	Year  int `arg:"" help:"Year to show." optional:""`
	Month int `arg:"" help:"Month to show (1-12)." optional:""`
}

func (c *MonthCmd) Run(ctx *Context) error {
	now := time.Now()
	year, month := c.Year, c.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}

	view := ctx.App.Prayer.GetMonth(year, month-1)

	fmt.Printf("%s %d\n", time.Month(month), year)
	fmt.Println("Sun Mon Tue Wed Thu Fri Sat")

	var row strings.Builder
	for i, rec := range view.Days {
		day := rec.Date[len(rec.Date)-2:]
		switch {
		case rec.Completed:
			row.WriteString(fmt.Sprintf("%s✓ ", day))
		case rec.Count > 0:
			row.WriteString(fmt.Sprintf("%s· ", day))
		default:
			row.WriteString(fmt.Sprintf("%s  ", day))
		}
		if (i+1)%7 == 0 {
			fmt.Println(strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	return nil
}
