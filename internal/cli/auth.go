package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zatekoja/dentaldesk/internal/adapters/credentials"
)

// Terminal seams, replaced in tests
var (
	isTerminal = term.IsTerminal
	readSecret = term.ReadPassword
)

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login", "[-token TOKEN]")
	token := fs.String("token", "", "access token; prompted for when omitted")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	value := strings.TrimSpace(*token)
	if value == "" {
		secret, err := a.promptToken()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		value = strings.TrimSpace(secret)
	}
	if value == "" {
		return errors.New("no token given")
	}

	if err := a.Tokens.SetToken(ctx, value); err != nil {
		return err
	}

	info, err := credentials.InspectToken(value)
	if err != nil {
		fmt.Fprintln(a.out, "Token stored (not a JWT, claims unavailable)")
		return nil
	}
	fmt.Fprintf(a.out, "Token stored for %s\n", orDash(info.Subject))
	if info.Expired(a.Now()) {
		fmt.Fprintln(a.errOut, "Warning: this token has already expired")
	}
	return nil
}

// promptToken reads the token without echo on a terminal, or one line from
// the input otherwise so it can be piped in.
func (a *App) promptToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := a.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return line, nil
	}

	fmt.Fprint(a.errOut, "Access token: ")
	secret, err := readSecret(fd)
	fmt.Fprintln(a.errOut)
	return string(secret), err
}

func (a *App) runLogout(ctx context.Context, args []string) error {
	if err := a.Tokens.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) runWhoami(ctx context.Context, args []string) error {
	token, err := a.Tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	info, err := credentials.InspectToken(token)
	if err != nil {
		fmt.Fprintln(a.out, "Logged in with an opaque token")
		return nil
	}

	if a.json {
		return a.printJSON(struct {
			*credentials.TokenInfo
			Expired bool `json:"expired"`
		}{info, info.Expired(a.Now())})
	}

	expires := "never"
	if info.ExpiresAt != nil {
		expires = localTime(*info.ExpiresAt)
		if info.Expired(a.Now()) {
			expires += " (expired)"
		}
	}
	return a.table([]string{"SUBJECT", "ISSUER", "EXPIRES"}, [][]string{{orDash(info.Subject), orDash(info.Issuer), expires}})
}
