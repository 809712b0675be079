// Package client provides gRPC client commands for the spellchain server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-spellchain/internal/handlers/actions/v1alpha1"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/yamlconv"
)

var (
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the parent command for all client operations
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for testing the spellchain server",
	Long:  `Client commands that call a running spellchain gRPC server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(saveChainCmd)
	ClientCmd.AddCommand(getChainCmd)
	ClientCmd.AddCommand(listChainsCmd)
	ClientCmd.AddCommand(deleteChainCmd)
	ClientCmd.AddCommand(executeCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(mitigateCmd)
	ClientCmd.AddCommand(historyCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	return conn, nil
}

// call opens a connection, invokes method and closes the connection
func call(cmd *cobra.Command, method string, req, resp any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	return v1alpha1.Invoke(ctx, v1alpha1.NewActionServiceClient(conn), method, req, resp)
}

// readDocument loads a YAML or JSON file into target. "-" reads stdin.
func readDocument(cmd *cobra.Command, path string, target any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return yamlconv.Unmarshal(data, target)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
