package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/icodeploy/internal/adapters/progress"
	"github.com/trebuchet-org/icodeploy/internal/app"
	"github.com/trebuchet-org/icodeploy/internal/cli/render"
	"github.com/trebuchet-org/icodeploy/internal/config"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app session
	appKey contextKey = "app"
)

// AppFactory builds the application container for a command invocation
type AppFactory func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error)

type options struct {
	newApp AppFactory
}

// Option configures the root command
type Option func(*options)

// WithAppFactory replaces the wire-generated app initializer
func WithAppFactory(factory AppFactory) Option {
	return func(o *options) {
		o.newApp = factory
	}
}

// session is stored in the command context between pre-run and run
type session struct {
	app    *app.App
	cancel context.CancelFunc
}

// NewRootCmd creates the root command. Running it without a subcommand
// deploys the ICO contract.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{newApp: app.InitApp}
	for _, opt := range opts {
		opt(o)
	}

	rootCmd := &cobra.Command{
		Use:   "icodeploy",
		Short: "Deploy the ICO contract",
		Long: `icodeploy deploys the ICO contract from the project's compiled artifacts
to the selected network, waits for the creation transaction to be mined and
prints the contract address.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(cmd)
			sink := progress.NewNopSink()
			if cmd == cmd.Root() {
				sink = progress.NewSpinnerSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
			}

			appInstance, err := o.newApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			s := &session{app: appInstance, cancel: func() {}}
			ctx := cmd.Context()
			if appInstance.Config != nil && appInstance.Config.Timeout > 0 {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			cmd.SetContext(context.WithValue(ctx, appKey, s))
			return nil
		},
		RunE: runDeploy,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Foundry profile holding the deployer key (defaults to 'default')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name from [rpc_endpoints] or an RPC URL (defaults to localhost)")

	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer releaseApp(cmd)

	result, err := app.DeployContract.Run(cmd.Context(), domain.DefaultDeploymentRequest())
	if err != nil {
		return err
	}

	return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
}

// Execute runs the root command and returns the process exit status
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	rootCmd := NewRootCmd(opts...)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	value := cmd.Context().Value(appKey)
	if value == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	s, ok := value.(*session)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return s.app, nil
}

// releaseApp cancels the command timeout and closes the app's connection
func releaseApp(cmd *cobra.Command) {
	s, ok := cmd.Context().Value(appKey).(*session)
	if !ok {
		return
	}
	s.cancel()
	_ = s.app.Close()
}
