package cli

import (
	"flag"

	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/logger"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(conf *config.Config, logger *logger.Logger) error
}
