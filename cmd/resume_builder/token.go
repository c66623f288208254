package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local development",
	Long:  "Mint a bearer token signed with JWT_SECRET, so the API can be called without an external identity provider.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var (
	tokenEmail string
	tokenName  string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "Email of the identity (required)")
	tokenCmd.Flags().StringVarP(&tokenName, "name", "n", "", "Display name of the identity")

	if err := tokenCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required to sign tokens")
	}

	token, err := server.NewJWTService(cfg.JWT).GenerateToken(types.Identity{Email: tokenEmail, Name: tokenName})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
