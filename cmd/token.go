package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd manages the upstream bearer token stored in session.token_file.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored upstream session token",
}

var tokenSaveCmd = &cobra.Command{
	Use:   "save <token>",
	Short: "Store a bearer token in session.token_file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Session.TokenFile == "" {
			return fmt.Errorf("session.token_file is not configured")
		}
		sess, err := newSession()
		if err != nil {
			return err
		}
		if err := sess.Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", cfg.Session.TokenFile)
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token cleared")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSaveCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
