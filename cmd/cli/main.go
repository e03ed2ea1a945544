// Package main provides a CLI that runs the FileMaker integration operations in-process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configDir string
	formsFile string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "formie-filemaker",
		Short:         "FileMaker webhook integration",
		Long:          "Sends submissions to a FileMaker Data API webhook and checks the connection from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding the .env file")
	rootCmd.PersistentFlags().StringVar(&formsFile, "forms", "", "Path to forms.yaml (overrides FORMS_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send a submission read from a JSON file",
		RunE:  send,
	}
	sendCmd.Flags().StringP("file", "f", "", "Submission JSON file ('-' for stdin)")
	sendCmd.MarkFlagRequired("file")

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the webhook connection",
		RunE:  probe,
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch an auth token and print it",
		RunE:  token,
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Preview the webhook response for a form",
		RunE:  settings,
	}
	settingsCmd.Flags().String("form", "", "Form ID from forms.yaml")
	settingsCmd.MarkFlagRequired("form")

	rootCmd.AddCommand(sendCmd, probeCmd, tokenCmd, settingsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
