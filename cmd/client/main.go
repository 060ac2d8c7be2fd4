package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/cli"
	"github.com/avdeyev/authgate/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "authgate-client.db", "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := clientapi.NewClient(*serverURL)

	if err := runCommand(ctx, command, args[1:], apiClient, boltStorage); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, command string, args []string, apiClient *clientapi.Client, boltStorage *boltdb.Storage) error {
	switch command {
	case "register":
		return cli.RunRegister(ctx, apiClient)
	case "login":
		return cli.RunLogin(ctx, apiClient, boltStorage)
	case "logout":
		return cli.RunLogout(ctx, apiClient, boltStorage)
	case "status":
		return cli.RunStatus(ctx, boltStorage)
	case "me":
		return cli.RunMe(ctx, apiClient, boltStorage)
	case "users":
		return cli.RunUsers(ctx, apiClient)
	case "user":
		return cli.RunGetUser(ctx, args, apiClient)
	case "profile":
		return cli.RunProfile(ctx, apiClient, boltStorage)
	case "passwd":
		return cli.RunPasswd(ctx, apiClient, boltStorage)
	case "forgot":
		return cli.RunForgot(ctx, apiClient)
	case "reset":
		return cli.RunReset(ctx, args, apiClient, boltStorage)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printVersion() {
	fmt.Printf("Authgate Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
