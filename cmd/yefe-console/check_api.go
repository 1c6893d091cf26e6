package main

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/spf13/cobra"

	"github.com/yefe-app/yefe-console/internal/config"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

var checkAPICmd = &cobra.Command{
	Use:   "check-api",
	Short: "Check that the Yefe API is reachable.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckAPI(cmd)
	},
}

func runCheckAPI(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := cleanhttp.DefaultClient()
	client.Timeout = cfg.APITimeout

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, cfg.APIBaseURL+"/v1/health", nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return failf(1, "api unreachable: %w", err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start).Round(time.Millisecond)

	// Any HTTP response means the API answered; the health endpoint itself may
	// be gated, so only 5xx counts as unhealthy.
	if resp.StatusCode >= http.StatusInternalServerError {
		return failf(1, "api unhealthy: %s in %s", resp.Status, elapsed)
	}

	cmd.Printf("ok: %s answered %s in %s\n", cfg.APIBaseURL, resp.Status, elapsed)
	return nil
}

var checkLoginCmd = &cobra.Command{
	Use:   "check-login [email]",
	Short: "Verify admin credentials against the Yefe API.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckLogin(cmd, args[0])
	},
}

func runCheckLogin(cmd *cobra.Command, email string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	api, err := yefeapi.New(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		return err
	}

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tokens, err := api.Login(ctx, email, password)
	if err != nil {
		return failf(1, "%s", yefeapi.Message(err, "login failed"))
	}

	account, err := api.Me(ctx, tokens.AccessToken)
	if err != nil {
		return failf(1, "%s", yefeapi.Message(err, "could not load account"))
	}

	cmd.Printf("ok: %s role=%s plan=%s\n", account.Email, account.Role, account.Plan)
	if account.Role != yefeapi.RoleAdmin {
		cmd.Println("warning: this account cannot sign in to the console (not an admin)")
	}
	return nil
}
