package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/currency"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change account settings",
	}

	cmd.AddCommand(settingsCurrencyCmd())
	cmd.AddCommand(settingsProfileCmd())

	return cmd
}

func settingsCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency [code]",
		Short: "Show or set the preferred display currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				active := st.Currency()
				for _, code := range currency.Codes() {
					marker := " "
					if code == active {
						marker = "*"
					}
					fmt.Printf("%s %s %s\n", marker, code, currency.Symbol(code))
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if err := st.UpdateCurrency(cmd.Context(), code); err != nil {
				return err
			}

			fmt.Printf("Preferred currency set to %s.\n", code)
			return nil
		},
	}
}

func settingsProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the display name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			st, err := newStore()
			if err != nil {
				return err
			}

			if err := st.UpdateProfile(cmd.Context(), name); err != nil {
				return err
			}

			fmt.Printf("Display name set to %s.\n", name)
			return nil
		},
	}

	cmd.Flags().String("name", "", "new display name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
