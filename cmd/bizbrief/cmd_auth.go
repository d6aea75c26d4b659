package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/validator"
)

const commandTimeout = 30 * time.Second

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [username-or-email]",
	Short: "Log in and keep the credential in the session store",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	req := domain.LoginRequest{
		Identifier: strings.TrimSpace(args[0]),
		Password:   loginPassword,
	}
	if err := validator.New().Validate(req); err != nil {
		return errors.New(domain.UserMessage(err))
	}

	client, err := newBackend()
	if err != nil {
		return err
	}
	sess, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	res, err := client.Login(ctx, req)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errors.New(domain.UserNotFoundMessage)
	case err != nil:
		log.Debug("Login failed", "error", err)
		return errors.New(domain.FormMessage(err))
	case res.Token == "":
		return errors.New(domain.FormFailureMessage)
	}

	if err := sess.SetToken(res.Token); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	name := sess.Username()
	if name == "" {
		name = req.Identifier
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	if err := sess.Logout(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	token := sess.Token()
	if token == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}

	client, err := newBackend()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	me, err := client.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			sess.OnUnauthorized()
			return errors.New("session expired, please log in again")
		}
		return errors.New(domain.UserMessage(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), me.Username)
	return nil
}
