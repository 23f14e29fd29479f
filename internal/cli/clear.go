package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		fmt.Print("This erases all recorded history. Type 'yes' to continue: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.App.Prayer.ClearAll()
	ctx.App.Adapter.Flush()
	fmt.Println("All data cleared.")
	return nil
}
