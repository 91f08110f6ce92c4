package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "Subject (employee id) of the token")
	tokenCmd.Flags().String("role", string(user.RoleEmployee), "Role claim: admin or employee")
	_ = tokenCmd.MarkFlagRequired("user")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token signed with the configured secret",
	Long: `Mint an access token signed with the configured secret. Tokens are
normally issued by the identity provider; this is meant for development
and operational scripts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")

		identity := user.Identity{UserID: subject, Role: user.Role(role)}
		if err := identity.Validate(); err != nil {
			return fmt.Errorf("invalid --user or --role: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
			GenerateAccessToken(identity.UserID, identity.Role)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
		return nil
	},
}
