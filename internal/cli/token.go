package cli

import (
	"fmt"
	"time"

	"github.com/existflow/clientpulse/internal/auth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Print a signed credential for a subject",
	Long: `Sign a credential with the configured secret, for scripts and for
reading the records owned by the webhook subject.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.Auth.TokenTTL
		}
		gate, err := auth.NewGate(cfg.Auth.Secret, ttl)
		if err != nil {
			return err
		}
		token, expiresAt, err := gate.Issue(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Credential lifetime (defaults to the configured token TTL)")
}
