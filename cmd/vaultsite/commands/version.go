package commands

import (
	"fmt"

	"git.home.luguber.info/inful/vaultsite/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println(version.String())
	return nil
}
