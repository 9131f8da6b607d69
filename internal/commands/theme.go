package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/app"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/prefs"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd reads or sets the persisted theme preference. The preference
// survives logout.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the theme" }
func (c *ThemeCmd) Usage() string     { return "taskdeck theme [light|dark]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	switch len(args) {
	case 0:
		fmt.Fprintln(out, a.Prefs.Theme)
		return exitcode.Success
	case 1:
		switch args[0] {
		case prefs.ThemeLight, prefs.ThemeDark:
			a.Prefs.Theme = args[0]
			a.SavePrefs()
			if !a.Config.Quiet {
				fmt.Fprintln(out, "ok")
			}
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: invalid theme: %s\n", args[0])
		return exitcode.UserError
	default:
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}
}
