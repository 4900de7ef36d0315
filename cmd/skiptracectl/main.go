// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command skiptracectl is the terminal client for the skip trace
// server.
//
// Usage:
//
//	skiptracectl search --name "Smith, John" --state LA
//	skiptracectl history
//	skiptracectl history --clear
//	skiptracectl report
//	skiptracectl report --export
//
// The server URL defaults to http://localhost:8080 and can be set with
// --server or the SKIPTRACE_SERVER environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// serverFlag and userFlag hold the persistent flag values shared by
// every subcommand.
var (
	serverFlag string
	userFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "skiptracectl",
	Short: "Terminal client for the skip trace server",
	Long: `skiptracectl drives the skip trace orchestration server from the
terminal: start a search, watch the tools settle, and print the report.`,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Start a search and wait for the report",
	Run:   runSearchCommand,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear saved searches",
	Run:   runHistoryCommand,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print or export the current report",
	Run:   runReportCommand,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server base URL (default $SKIPTRACE_SERVER or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User ID for history (default \"local\")")

	searchCmd.Flags().String("name", "", "Subject name (\"Last, First\" accepted)")
	searchCmd.Flags().String("email", "", "Subject email address")
	searchCmd.Flags().String("phone", "", "Subject phone number")
	searchCmd.Flags().String("address", "", "Subject street address")
	searchCmd.Flags().String("state", "", "2-letter state code")
	searchCmd.Flags().Bool("no-wait", false, "Return immediately instead of waiting for the report")

	historyCmd.Flags().Bool("clear", false, "Clear saved searches instead of listing them")

	reportCmd.Flags().Bool("export", false, "Write the report to a file on the server")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
}

// serverBaseURL resolves the server URL from flag, environment, or the
// local default, in that order.
func serverBaseURL() string {
	if serverFlag != "" {
		return serverFlag
	}
	if v := os.Getenv("SKIPTRACE_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
