package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contas-cli",
		Short: "Contas CLI tool",
		Long:  `A command line interface for the receivables and payables API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(balanceCmd(), settleCmd(), reverseCmd(), integrityCmd())

	return rootCmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <kind> <entry-id>",
		Short: "Show an entry with its paid total and outstanding balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, entryID := args[0], args[1]
			return getJSON(fmt.Sprintf("%s/api/v1/%s/%s", baseURL, collection(kind), entryID))
		},
	}
}

func settleCmd() *cobra.Command {
	var (
		termID   string
		paid     string
		interest string
		penalty  string
		discount string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "settle <kind> <entry-id>",
		Short: "Record a payment against an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, entryID := args[0], args[1]

			payload := map[string]any{
				"payment_term_id": termID,
				"paid_amount":     paid,
				"interest_amount": interest,
				"penalty_amount":  penalty,
				"discount_amount": discount,
			}
			if date != "" {
				payload["settlement_date"] = date
			}

			url := fmt.Sprintf("%s/api/v1/%s/%s/settlements", baseURL, collection(kind), entryID)
			return postJSON(url, payload)
		},
	}

	cmd.Flags().StringVar(&termID, "term", "", "Payment term ID")
	cmd.Flags().StringVar(&paid, "paid", "", "Paid amount")
	cmd.Flags().StringVar(&interest, "interest", "0", "Interest amount")
	cmd.Flags().StringVar(&penalty, "penalty", "0", "Penalty amount")
	cmd.Flags().StringVar(&discount, "discount", "0", "Discount amount")
	cmd.Flags().StringVar(&date, "date", "", "Settlement date (RFC 3339)")
	cmd.MarkFlagRequired("term")
	cmd.MarkFlagRequired("paid")

	return cmd
}

func reverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <kind> <entry-id> <settlement-id>",
		Short: "Reverse a settlement, reopening the entry if needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, entryID, settlementID := args[0], args[1], args[2]

			url := fmt.Sprintf("%s/api/v1/%s/%s/settlements/%s", baseURL, collection(kind), entryID, settlementID)
			req, err := http.NewRequest(http.MethodDelete, url, nil)
			if err != nil {
				return err
			}

			resp, err := httpClient().Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("reversal failed (status %d): %s", resp.StatusCode, body)
			}

			fmt.Println("settlement reversed")
			return nil
		},
	}
}

func integrityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "integrity <kind>",
		Short: "Report entries whose settlements exceed the face value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(fmt.Sprintf("%s/api/v1/%s/integrity", baseURL, collection(args[0])))
		},
	}
}

// collection maps a kind argument to its API collection. Unknown kinds
// pass through so the server answers with its own error.
func collection(kind string) string {
	switch kind {
	case "receivable", "receivables":
		return "receivables"
	case "payable", "payables":
		return "payables"
	}
	return kind
}

func httpClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

func getJSON(url string) error {
	resp, err := httpClient().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func postJSON(url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := httpClient().Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}
