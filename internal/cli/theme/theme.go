package theme

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/session"
)

type themeCommand struct {
	out  io.Writer
	show bool
}

func NewCommand() cli.Command {
	return &themeCommand{out: os.Stdout}
}

func (c *themeCommand) Description() string {
	return "Toggle between light and dark mode"
}

func (c *themeCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.show, "show", false, "print the current mode without changing it")
}

func (c *themeCommand) Run(conf *config.Config, logger *logger.Logger) error {
	ctx := context.Background()

	s, cache, err := cli.NewSession(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	c.apply(ctx, s)
	return nil
}

func (c *themeCommand) apply(ctx context.Context, s *session.Session) {
	dark := s.DarkMode()
	if !c.show {
		dark = s.ToggleDarkMode(ctx)
	}

	mode := "light"
	if dark {
		mode = "dark"
	}
	fmt.Fprintf(c.out, "Display mode: %s\n", mode)
}
