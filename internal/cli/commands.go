package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/polkadot/internal/version"
	"github.com/arthur-debert/polkadot/pkg/config"
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		opts      runOptions
	)

	rootCmd := &cobra.Command{
		Use:   "polkadot [config]",
		Short: "Apply a declarative set of dotfile operations",
		Long: `polkadot reads a configuration file declaring file operations (copy with
templating, touch, mkdir, mode, git clone, download) and applies them to your
home directory, running each operation's dependencies first.

Without a path, polkadot looks for polkadot.toml or polkadot.yaml in the
current directory, then in $XDG_CONFIG_HOME/polkadot.`,
		Example: `  # Preview what would change
  polkadot --dry-run

  # Apply a specific file with an extra template value
  polkadot ~/dotfiles/polkadot.toml -e EMAIL=me@example.com

  # Machine readable output
  polkadot -d -o json`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.configPath = args[0]
			}
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return run(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "Describe every operation without changing anything")
	rootCmd.Flags().StringArrayVarP(&opts.extras, "extra", "e", nil, "Extra KEY=VALUE template value (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "auto", "Output format: auto, term, text, json or yaml")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newInitCmd(&opts.output))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "polkadot version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `To load completions:

Bash:
  $ source <(polkadot completion bash)

Zsh:
  $ polkadot completion zsh > "${fpath[1]}/_polkadot"

Fish:
  $ polkadot completion fish | source

PowerShell:
  PS> polkadot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man [dir]",
		Short: "Generate man pages",
		Long:  `Generate man pages for polkadot into dir (default: the current directory)`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "POLKADOT",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
}

func newInitCmd(output *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter configuration",
		Long: `Init writes a polkadot.toml into dir (default: the current directory)
with one example of every operation.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # Start a configuration in your dotfiles repository
  cd ~/dotfiles && polkadot init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(*output)
			if err != nil {
				return err
			}
			out, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.SampleFileName)

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to overwrite", path).
					WithDetail("path", path)
			}

			data, err := config.SampleTOML()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}

			log.Info().Str("path", path).Msg("Wrote starter configuration")
			return out.RenderMessage(fmt.Sprintf("Created %s", path))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	return cmd
}
