// Auth commands: signup, login, logout, whoami, reset-password.
package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the signed-in account",
}

var (
	authEmail    string
	authPassword string
)

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE:  runAuthSignup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an existing account",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runAuthWhoami,
}

var authResetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Send a password reset email",
	RunE:  runAuthReset,
}

func init() {
	for _, c := range []*cobra.Command{authSignupCmd, authLoginCmd, authResetCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "account email")
	}
	authLoginCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")

	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authResetCmd)
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	svc, err := application.Auth()
	if err != nil {
		return err
	}

	email := authEmail
	var password, confirm string

	var groups []*huh.Group
	if email == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm),
	))
	if err := huh.NewForm(groups...).Run(); err != nil {
		return err
	}

	user, err := svc.SignUp(cmd.Context(), email, password, confirm)
	if err != nil {
		return err
	}

	fmt.Printf("Account created. Signed in as %s\n", user.Email)
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	svc, err := application.Auth()
	if err != nil {
		return err
	}

	email := authEmail
	password := authPassword

	var groups []*huh.Group
	if email == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email),
		))
	}
	if password == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		))
	}
	if len(groups) > 0 {
		if err := huh.NewForm(groups...).Run(); err != nil {
			return err
		}
	}

	user, err := svc.SignIn(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	svc, err := application.Auth()
	if err != nil {
		return err
	}

	if err := svc.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	svc, err := application.Auth()
	if err != nil {
		return err
	}

	user, err := svc.CurrentUser()
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	if user.DisplayName != "" {
		fmt.Printf("%s <%s>\n", user.DisplayName, user.Email)
	} else {
		fmt.Println(user.Email)
	}
	return nil
}

func runAuthReset(cmd *cobra.Command, args []string) error {
	svc, err := application.Auth()
	if err != nil {
		return err
	}

	email := authEmail
	if email == "" {
		if err := huh.NewInput().Title("Email").Value(&email).Run(); err != nil {
			return err
		}
	}

	if err := svc.ResetPassword(cmd.Context(), email); err != nil {
		return err
	}

	fmt.Printf("Password reset email sent to %s\n", email)
	return nil
}
