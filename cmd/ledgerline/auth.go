package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE:  runLogin,
	}

	cmd.Flags().String("email", "", "account email (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	if err := st.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	user := st.User()
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE:  runRegister,
	}

	cmd.Flags().String("name", "", "display name (prompted when omitted)")
	cmd.Flags().String("email", "", "account email (prompted when omitted)")

	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		var err error
		name, err = promptLine("Name: ")
		if err != nil {
			return err
		}
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	if err := st.Register(cmd.Context(), name, email, password); err != nil {
		return err
	}

	fmt.Printf("Account created. Signed in as %s.\n", email)
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := newStore()
			if err != nil {
				return err
			}

			st.Logout()
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := newStore()
			if err != nil {
				return err
			}

			user := st.User()
			if user == nil {
				fmt.Println("Not signed in. Run 'ledgerline login' first.")
				return nil
			}

			fmt.Printf("%s <%s>\npreferred currency: %s\n", user.Name, user.Email, user.PreferredCurrency())
			return nil
		},
	}
}
