package cli

type DaemonCmd struct{}

func (c *DaemonCmd) Run(ctx *Context) error {
	return ctx.App.Daemon()
}
