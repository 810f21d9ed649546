package commands

import (
	"fmt"
	"os"

	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

const starterConfig = `site:
  title: "Documentation"
  base_url: "/"

source:
  type: dir
  path: "./docs"

output:
  directory: "./site"
  clean: true

logging:
  level: info
  format: text

serve:
  port: 1316
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if _, err := os.Stat(root.Config); err == nil && !i.Force {
		return derrors.ValidationError(
			fmt.Sprintf("configuration file %s already exists (use --force to overwrite)", root.Config))
	}

	if err := os.WriteFile(root.Config, []byte(starterConfig), 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write configuration file")
	}

	fmt.Printf("Wrote %s\n", root.Config)
	return nil
}
