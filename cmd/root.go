package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csesa/portal-client/internal/auth"
	"github.com/csesa/portal-client/internal/client"
	"github.com/csesa/portal-client/internal/config"
	"github.com/csesa/portal-client/internal/store"
)

var Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:          "portal",
	Short:        "portal – command-line client for the CSESA portal",
	Long:         "portal talks to the CSESA portal backend: sign in with your institute Google account, browse events, projects and the team, and manage your profile.",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portal %s\n", Version)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// newSession wires config, credential store, API client and session facade
// for one command invocation.
func newSession() (*auth.Session, *client.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	st := store.New(cfg.Store.CredentialsFile)
	api := client.New(cfg.API, st)
	session := auth.NewSession(api, st, cfg.OAuth.RedirectURI)
	session.OnLogout = func() {
		fmt.Println("Session cleared. Run `portal login` to sign in again.")
	}
	return session, api, cfg, nil
}
