package commands

import (
	"fmt"

	"git.home.luguber.info/inful/vaultsite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite an existing configuration file"`
	Path  string `arg:"" optional:"" help:"Where to write the file (default: --config or vaultsite.yaml)" type:"path"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := i.Path
	if path == "" {
		path = root.Config
	}
	if path == "" {
		path = "vaultsite.yaml"
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote configuration to %s\n", path)
	return nil
}
