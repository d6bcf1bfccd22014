package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"fresco"
	"fresco/api"
	"fresco/auth"
	"fresco/storage"
	"fresco/store"
)

var (
	debug bool
	app   *cliApp
)

// cliApp holds everything a command needs, built once per invocation.
type cliApp struct {
	apiConfig    fresco.APIConfig
	authConfig   fresco.AuthConfig
	exportConfig fresco.ExportConfig

	httpClient *http.Client
	provider   auth.Provider
	users      *auth.Manager
	store      *store.Store
	span       trace.Span
	cleanup    func(ctx context.Context) error
}

var rootCmd = &cobra.Command{
	Use:   "fresco",
	Short: "Browse recipes and plan a shopping list",
	Long: `fresco browses the recipe catalogue, keeps favourites and a cart of
selected recipes, and turns the cart into a consolidated shopping list.

Configuration is read from the environment:
  FRESCO_API_BASE_URL  - recipe API endpoint
  COGNITO_CLIENT_ID    - app client used by login and signup
  FRESCO_SESSION_PATH  - where the signed-in session is kept`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		a, err := newCLIApp(cmd.Context())
		if err != nil {
			return err
		}
		ctx, span := otel.Tracer(fresco.TracerNameCLI).Start(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(ctx)
		a.span = span
		app = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and dump the store after each command")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(recipesCmd, recipeCmd)
	rootCmd.AddCommand(favouriteCmd, favouritesCmd)
	rootCmd.AddCommand(cartCmd)
}

func main() {
	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)

	if app != nil {
		if debug {
			fresco.Dump(app.store.Snapshot())
		}
		app.span.End()
		if cerr := app.cleanup(ctx); cerr != nil {
			slog.Error("SHUTDOWN: Cleanup failed", "error", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func newCLIApp(ctx context.Context) (*cliApp, error) {
	a := &cliApp{}
	if err := envdecode.Decode(&a.apiConfig); err != nil {
		return nil, fmt.Errorf("failed to decode API config: %w", err)
	}
	if err := envdecode.Decode(&a.authConfig); err != nil {
		return nil, fmt.Errorf("failed to decode auth config: %w", err)
	}
	if err := envdecode.Decode(&a.exportConfig); err != nil {
		return nil, fmt.Errorf("failed to decode export config: %w", err)
	}

	otelShutdown, err := fresco.InitOtel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	if a.authConfig.CognitoClientID != "" {
		a.provider, err = newCognitoProvider(ctx, a.authConfig.CognitoClientID)
		if err != nil {
			return nil, err
		}
	}
	a.users = auth.NewManager(a.provider, storage.NewFileBlob(a.authConfig.SessionPath))

	a.httpClient = &http.Client{Timeout: a.apiConfig.HTTPTimeout}
	client, err := api.NewClient(api.ClientOpts{
		BaseURL:    a.apiConfig.BaseURL,
		PageSize:   a.apiConfig.PageSize,
		HTTPClient: a.httpClient,
		Tokens:     a.users,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	events, closeEvents, err := newEventLogger(a.authConfig.EventLogPath)
	if err != nil {
		return nil, err
	}

	a.store = store.New(client, a.users, events)
	a.cleanup = func(ctx context.Context) error {
		return errors.Join(closeEvents(), otelShutdown(ctx))
	}
	return a, nil
}

func newCognitoProvider(ctx context.Context, clientID string) (*auth.CognitoProvider, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return auth.NewCognitoProvider(cognitoidentityprovider.NewFromConfig(awsCfg), clientID)
}

// newEventLogger opens the event log when a path is configured. The returned func flushes and closes it.
func newEventLogger(path string) (fresco.EventLogger, func() error, error) {
	if path == "" {
		return fresco.NewNoOpEventLogger(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create event log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event log: %w", err)
	}

	logger := fresco.NewFileEventLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
