package favorite

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
	"github.com/GustavoCaso/carfinder/internal/util"
)

type favoriteCommand struct {
	out io.Writer
	id  string
}

func NewCommand() cli.Command {
	return &favoriteCommand{out: os.Stdout}
}

func (c *favoriteCommand) Description() string {
	return "Add a listing to the wishlist, or remove it when already there"
}

func (c *favoriteCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "listing id to toggle")
}

func (c *favoriteCommand) Run(conf *config.Config, logger *logger.Logger) error {
	ctx := context.Background()

	s, cache, err := cli.NewSession(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	return c.toggle(ctx, s)
}

func (c *favoriteCommand) toggle(ctx context.Context, s *session.Session) error {
	if c.id == "" {
		return fmt.Errorf("you must provide the id of the listing to toggle")
	}

	// Looked up first: a removed favorite may exist nowhere else.
	listing, _ := s.Listing(c.id)

	added, err := s.ToggleFavorite(ctx, c.id)
	if err != nil {
		return err
	}

	count := len(s.Favorites())

	if added {
		fmt.Fprintf(c.out, "%s %s (%d in wishlist)\n", util.ColorOutput("Added", "green", "bold"), listing.Name(), count)
	} else {
		fmt.Fprintf(c.out, "%s %s (%d in wishlist)\n", util.ColorOutput("Removed", "red", "bold"), listing.Name(), count)
	}

	return nil
}
