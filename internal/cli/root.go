package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"immichclient/pkg/client"
)

var (
	flagServer   string
	flagAPIKey   string
	flagEmail    string
	flagPassword string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "immich",
		Short:         "Upload images and videos to an Immich server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagServer, "server", "", "server API URL, e.g. https://immich.example.com/api (env IMMICH_SERVER)")
	cmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (env IMMICH_API_KEY)")
	cmd.PersistentFlags().StringVar(&flagEmail, "email", "", "login email (env IMMICH_EMAIL)")
	cmd.PersistentFlags().StringVar(&flagPassword, "password", "", "login password (env IMMICH_PASSWORD)")

	cmd.AddCommand(newAlbumsCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newBatchCmd())
	return cmd
}

// Execute runs the CLI. A .env file in the working directory is honored for
// the connection settings.
func Execute() error {
	_ = godotenv.Load()
	return newRootCmd().Execute()
}

func fromEnv(flag, key string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(key)
}

func newClient() (*client.Client, error) {
	server := fromEnv(flagServer, "IMMICH_SERVER")
	if server == "" {
		return nil, errors.New("no server configured: pass --server or set IMMICH_SERVER")
	}

	if key := fromEnv(flagAPIKey, "IMMICH_API_KEY"); key != "" {
		return client.WithKey(server, key)
	}

	email := fromEnv(flagEmail, "IMMICH_EMAIL")
	password := fromEnv(flagPassword, "IMMICH_PASSWORD")
	if email == "" || password == "" {
		return nil, errors.New("no credentials: pass --api-key or --email/--password")
	}
	return client.WithEmail(server, email, password)
}
