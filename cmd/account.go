package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/chronos/internal/account"
	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/model"
)

// Account command flags.
var (
	accountFlagName     string
	accountFlagEmail    string
	accountFlagPassword string
	accountFlagMorse    string
	accountFlagAvatar   string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account and make its name the displayed profile name.

The password is prompted for when it is not given as a flag. A morse
signal of exactly 8 '.' or '-' symbols can be registered as an
alternative sign-in.

Examples:
  chronos register --name Ada --email ada@example.com
  chronos register --name Ada --email ada@example.com --morse .-.-.-.-`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Long: `Sign in with a password or a morse signal.

Examples:
  chronos login --email ada@example.com
  chronos login --email ada@example.com --morse .-.-.-.-`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the displayed profile",
	Long: `Show the displayed profile, or change its name or avatar.

Examples:
  chronos profile
  chronos profile --name "Ada L."
  chronos profile --avatar me.png`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&accountFlagEmail, "email", "e", "", "Account email")
		c.Flags().StringVar(&accountFlagPassword, "password", "", "Account password (prompted when omitted)")
		c.Flags().StringVar(&accountFlagMorse, "morse", "", "Morse signal of 8 '.' or '-' symbols")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVarP(&accountFlagName, "name", "n", "", "Display name")
	_ = registerCmd.MarkFlagRequired("name")

	profileCmd.Flags().StringVarP(&accountFlagName, "name", "n", "", "New display name")
	profileCmd.Flags().StringVar(&accountFlagAvatar, "avatar", "", "Image file to use as avatar")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(profileCmd)
}

// readSecret prompts for a hidden value when stdin is a terminal.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.NewUserError("Password is required", "Pass --password or run in a terminal to be prompted")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.NewSystemErrorWithOp("read", "read password", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	password := accountFlagPassword
	if password == "" {
		var err error
		if password, err = readSecret("Password: "); err != nil {
			return err
		}
	}

	profile, err := ctx.Account.Register(cmd.Context(), account.Registration{
		Name:     accountFlagName,
		Email:    accountFlagEmail,
		Password: password,
		Morse:    accountFlagMorse,
	})
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Welcome, "+profile.Name)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(profile)
	}
	ctx.CLIFormatter().Success("Registered " + accountFlagEmail)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	creds := account.Credentials{Email: accountFlagEmail, Password: accountFlagPassword, Morse: accountFlagMorse}
	if creds.Password == "" && creds.Morse == "" {
		var err error
		if creds.Password, err = readSecret("Password: "); err != nil {
			return err
		}
	}

	profile, err := ctx.Account.Login(cmd.Context(), creds)
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Signed in as "+profile.Name)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(profile)
	}
	ctx.CLIFormatter().Success("Signed in as " + profile.Name)
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	var (
		profile model.UserProfile
		err     error
	)
	changed := false

	if cmd.Flags().Changed("name") {
		profile, err = ctx.Account.UpdateProfile(cmd.Context(), model.ProfileUpdate{Name: &accountFlagName})
		if err != nil {
			return err
		}
		changed = true
	}
	if accountFlagAvatar != "" {
		data, rerr := os.ReadFile(accountFlagAvatar)
		if rerr != nil {
			return errors.NewUserErrorWithField("avatar", accountFlagAvatar, "Cannot read image", "Check the file path")
		}
		profile, err = ctx.Account.SetAvatar(cmd.Context(), data)
		if err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		if profile, err = ctx.Account.Profile(cmd.Context()); err != nil {
			return err
		}
	} else {
		announce(cmd.Context(), model.NotifySuccess, "Profile updated")
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(profile)
	}
	cli := ctx.CLIFormatter()
	if changed {
		cli.Success("Profile updated")
	}
	cli.PrintProfile(profile)
	return nil
}
