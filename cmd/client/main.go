package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const requestTimeout = 5 * time.Second

type clientFlags struct {
	addr    string
	useGRPC bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &clientFlags{}
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Client for the playbook collection server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.addr, "addr", "localhost:6379", "server address")
	cmd.PersistentFlags().BoolVar(&flags.useGRPC, "grpc", false, "use the gRPC service instead of the TCP protocol")

	cmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Read commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, flags)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "exec COMMAND [args...]",
		Short: "Run a single command and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, flags, args)
		},
	})
	return cmd
}

func runExec(cmd *cobra.Command, flags *clientFlags, args []string) error {
	request, err := argParser(args)
	if err != nil {
		return err
	}

	client, err := connect(flags.addr, flags.useGRPC)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	response, err := client.Execute(ctx, request)
	if err != nil {
		return err
	}
	printResponse(cmd.OutOrStdout(), request["command"].(string), response)
	if response["status"] == "ERROR" {
		cmd.SilenceUsage = true
		return fmt.Errorf("%v", response["message"])
	}
	return nil
}

func runREPL(cmd *cobra.Command, flags *clientFlags) error {
	client, err := connect(flags.addr, flags.useGRPC)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Connected to server. Type commands (e.g., PUSH key value, RANGE key, ENQUEUE key value) and press Enter.")
	reader := bufio.NewReader(cmd.InOrStdin())

	for {
		fmt.Fprint(out, ">> ")
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("error reading input: %w", err)
		}

		parts := strings.Fields(input)
		if len(parts) == 0 {
			continue
		}
		if cmdName := strings.ToUpper(parts[0]); cmdName == "QUIT" || cmdName == "EXIT" {
			return nil
		}

		request, err := argParser(parts)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		response, err := client.Execute(ctx, request)
		cancel()
		if err != nil {
			return err
		}
		printResponse(out, request["command"].(string), response)
	}
}
