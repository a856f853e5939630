// Command gcal-auth performs the one-time OAuth consent for the Google
// Calendar mirror and writes the token file the API server reads.
//
//	go run ./scripts/gcal-auth --credentials google-credentials.json --token token.json
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"ai-task-manager/pkg/gcalendar"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var credsPath, tokenPath string

	cmd := &cobra.Command{
		Use:          "gcal-auth",
		Short:        "Authorize Google Calendar access and save an OAuth token",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("read credentials %q: %w", credsPath, err)
			}
			cfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
			if err != nil {
				return fmt.Errorf("%q is not an OAuth desktop credentials file: %w", credsPath, err)
			}
			return authorize(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), tokenPath)
		},
	}

	cmd.Flags().StringVar(&credsPath, "credentials", "google-credentials.json", "OAuth desktop app credentials")
	cmd.Flags().StringVar(&tokenPath, "token", gcalendar.DefaultTokenPath, "Where to write the token (google_calendar.token_path)")
	return cmd
}

type exchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

func authorize(ctx context.Context, cfg exchanger, in io.Reader, out io.Writer, tokenPath string) error {
	fmt.Fprintln(out, "1. Open this URL and sign in with the Google account that owns the calendar:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Fprintln(out)
	fmt.Fprint(out, "2. Paste the authorization code here and press Enter: ")

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("empty authorization code")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", tokenPath, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write %s: %w", tokenPath, err)
	}

	fmt.Fprintf(out, "\nToken saved to %s. Restart the API server to enable the calendar mirror.\n", tokenPath)
	return nil
}
