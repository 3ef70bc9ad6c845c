package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/csesa/portal-client/internal/callback"
)

var (
	loginEmail      string
	loginReturnPath string
	loginTimeout    time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through Google, or with --email and a password",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, cfg, err := newSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if loginEmail != "" {
			fmt.Fprint(os.Stderr, "Password: ")
			password, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			user, err := session.PasswordLogin(ctx, loginEmail, strings.TrimSpace(password))
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		}

		srv, err := callback.New(session, cfg.OAuth.CallbackAddr, cfg.OAuth.RedirectURI)
		if err != nil {
			return err
		}
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		authURL, err := session.Login(ctx, loginReturnPath)
		if err != nil {
			return err
		}

		fmt.Printf("Open the following URL in your browser to sign in:\n\n  %s\n\n", authURL)
		openBrowser(authURL)

		waitCtx, cancel := context.WithTimeout(ctx, loginTimeout)
		defer cancel()
		res, err := srv.Wait(waitCtx)
		if err != nil {
			return fmt.Errorf("waiting for login: %w", err)
		}
		if res.Err != nil {
			return res.Err
		}

		u := res.Response.User
		fmt.Printf("Logged in as %s <%s>\n", u.Name, u.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, _, err := newSession()
		if err != nil {
			return err
		}
		session.OnLogout = nil
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// openBrowser is best effort; the URL is already printed for manual use.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Log in with email and password instead of Google")
	loginCmd.Flags().StringVar(&loginReturnPath, "return-path", "/", "Site path the web login would return to")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "How long to wait for the browser login")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
