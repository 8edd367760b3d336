package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/profile"
)

// initCommand creates the init command for writing a starter profile.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [profile.toml]",
		Short: "Write a commented starter profile",
		Long: `Write a commented starter profile.

The generated file declares a two-tier section with sensible defaults and a
comment on every field. Edit it, then synthesize with 'synth' or draw it
with 'render'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appName + ".toml"
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(path, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func runInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(profile.DefaultTOML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Created %s", path)
	printNextStep("Draw it", fmt.Sprintf("%s render %s", appName, path))
	return nil
}
