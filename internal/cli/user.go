package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/clientpulse/internal/auth"
	"github.com/existflow/clientpulse/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage sign-in accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account with an email and password",
	Long: `Create an account directly in the database. The password is read
from the terminal without echo, or from stdin when it is not a terminal.`,
	RunE: runUserAdd,
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userAddCmd.Flags().String("email", "", "Account email (required)")
	_ = userAddCmd.MarkFlagRequired("email")
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	gate, err := auth.NewGate(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := service.NewAccounts(st, gate, false).Signup(cmd.Context(), email, password); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created account %s\n", strings.ToLower(strings.TrimSpace(email)))
	return nil
}

func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
