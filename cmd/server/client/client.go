// Package client provides commands that call a running gurps-api server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/gurps-api/internal/handlers/gurps/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared by the commands that act on one character
	characterID string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running gurps-api server",
	Long:  `Client commands make real gRPC requests against a gurps-api server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(createCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(setCmd)
	ClientCmd.AddCommand(deleteCmd)
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(importCmd)
	ClientCmd.AddCommand(summaryCmd)
}

// requireID registers the --id flag on cmd
func requireID(cmd *cobra.Command) {
	cmd.Flags().StringVar(&characterID, "id", "", "Character ID (required)")
	_ = cmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

// createCharacterClient dials the server and returns a typed client
func createCharacterClient() (*v1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	client, err := v1alpha1.NewClient(conn)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}
