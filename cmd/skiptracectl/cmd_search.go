// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// pollInterval paces the status polling loop while a search settles.
const pollInterval = 2 * time.Second

type searchRequest struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty"`
}

type searchResponse struct {
	SearchID   string   `json:"search_id"`
	Generation uint64   `json:"generation"`
	Tools      []string `json:"tools"`
}

type statusResponse struct {
	Generation uint64 `json:"generation"`
	Settled    bool   `json:"settled"`
	Tasks      []struct {
		Key    string `json:"key"`
		Label  string `json:"label"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	} `json:"tasks"`
}

type historyResponse struct {
	Entries []struct {
		Name      string    `json:"name,omitempty"`
		Email     string    `json:"email,omitempty"`
		Phone     string    `json:"phone,omitempty"`
		Address   string    `json:"address,omitempty"`
		State     string    `json:"state,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"entries"`
}

type exportResponse struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func runSearchCommand(cmd *cobra.Command, _ []string) {
	req := searchRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Email, _ = cmd.Flags().GetString("email")
	req.Phone, _ = cmd.Flags().GetString("phone")
	req.Address, _ = cmd.Flags().GetString("address")
	req.State, _ = cmd.Flags().GetString("state")
	noWait, _ := cmd.Flags().GetBool("no-wait")

	var ack searchResponse
	if err := postJSON("/v1/osint/search", req, &ack); err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("Search accepted (generation %d, %d tools)\n", ack.Generation, len(ack.Tools))
	if noWait {
		return
	}

	fmt.Println("Waiting for tools to settle...")
	for {
		time.Sleep(pollInterval)

		var status statusResponse
		if err := getJSON("/v1/osint/search/status", &status); err != nil {
			log.Fatalf("Error: %v", err)
		}
		if status.Generation != ack.Generation {
			// A newer search superseded ours.
			fmt.Println("Search superseded by a newer request; exiting.")
			return
		}

		running := 0
		for _, t := range status.Tasks {
			if t.Status == "running" {
				running++
			}
		}
		fmt.Printf("  %d tool(s) still running\n", running)
		if status.Settled {
			break
		}
	}

	report, err := getText("/v1/osint/report")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Println()
	fmt.Print(report)
}

func runHistoryCommand(cmd *cobra.Command, _ []string) {
	clearRequested, _ := cmd.Flags().GetBool("clear")

	if clearRequested {
		if err := doRequest(http.MethodDelete, "/v1/osint/history", nil, nil); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	var history historyResponse
	if err := getJSON("/v1/osint/history", &history); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if len(history.Entries) == 0 {
		fmt.Println("No saved searches.")
		return
	}
	for i, e := range history.Entries {
		fmt.Printf("%d. %s\n", i+1, e.Timestamp.Local().Format("2006-01-02 15:04"))
		if e.Name != "" {
			fmt.Printf("   Name:    %s\n", e.Name)
		}
		if e.Email != "" {
			fmt.Printf("   Email:   %s\n", e.Email)
		}
		if e.Phone != "" {
			fmt.Printf("   Phone:   %s\n", e.Phone)
		}
		if e.Address != "" {
			fmt.Printf("   Address: %s\n", e.Address)
		}
		if e.State != "" {
			fmt.Printf("   State:   %s\n", e.State)
		}
	}
}

func runReportCommand(cmd *cobra.Command, _ []string) {
	export, _ := cmd.Flags().GetBool("export")

	if export {
		var res exportResponse
		if err := postJSON("/v1/osint/report/export", nil, &res); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Report written to %s\n", res.Path)
		return
	}

	report, err := getText("/v1/osint/report")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Print(report)
}

// ===== HTTP plumbing =====

func httpClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Minute}
}

func postJSON(path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	return doRequest(http.MethodPost, path, body, out)
}

func getJSON(path string, out any) error {
	return doRequest(http.MethodGet, path, nil, out)
}

func getText(path string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, serverBaseURL()+path, nil)
	if err != nil {
		return "", err
	}
	applyHeaders(req)
	resp, err := httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %s", resp.Status)
	}
	return string(data), nil
}

func doRequest(method, path string, body io.Reader, out any) error {
	req, err := http.NewRequest(method, serverBaseURL()+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	applyHeaders(req)

	resp, err := httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%s)", apiErr.Error, apiErr.Code)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func applyHeaders(req *http.Request) {
	if userFlag != "" {
		req.Header.Set("X-User-ID", userFlag)
	}
}
