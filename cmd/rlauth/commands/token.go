package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/redletters/rlauth/auth"
	"github.com/redletters/rlauth/tokenstore"
)

// tokenError reports a token operation failure as "<code>: <message>".
type tokenError struct {
	err error
}

func (e *tokenError) Error() string {
	return auth.Code(e.err) + ": " + auth.Message(e.err)
}

func (e *tokenError) Unwrap() error {
	return e.err
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "get, set or delete the stored auth token",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "print the auth token and where it came from",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reveal", Usage: "print the full token instead of a masked one"},
					&cli.BoolFlag{Name: "json", Usage: "print {token, source} as JSON (implies --reveal)"},
				},
				Action: tokenGetAction,
			},
			{
				Name:      "set",
				Usage:     "validate a token and store it in the OS keychain",
				ArgsUsage: "[TOKEN]",
				Description: "The token is taken from the argument, from --from-env, or read from stdin.\n" +
					"Only the keychain is written; the fallback file is never modified.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from-env", Usage: "read the token from this environment variable"},
				},
				Action: tokenSetAction,
			},
			{
				Name:   "delete",
				Usage:  "remove the token from the OS keychain",
				Action: tokenDeleteAction,
			},
			{
				Name:  "generate",
				Usage: "print a new random token",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "store", Usage: "also store the generated token in the OS keychain"},
				},
				Action: tokenGenerateAction,
			},
		},
	}
}

func tokenGetAction(ctx context.Context, cmd *cli.Command) error {
	application, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resolved, err := application.Resolver().ResolveToken(ctx)
	if err != nil {
		return &tokenError{err: err}
	}

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		return json.NewEncoder(out).Encode(resolved)
	}

	token := resolved.Token
	if !cmd.Bool("reveal") {
		token = auth.MaskToken(token)
	}
	_, err = fmt.Fprintf(out, "%s\t%s\n", token, resolved.Source)
	return err
}

func tokenSetAction(ctx context.Context, cmd *cli.Command) error {
	candidate, err := readTokenInput(ctx, cmd)
	if err != nil {
		return err
	}

	application, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := application.Resolver().StoreToken(ctx, candidate); err != nil {
		return &tokenError{err: err}
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "stored %s in keychain\n", auth.MaskToken(candidate))
	return err
}

func tokenDeleteAction(ctx context.Context, cmd *cli.Command) error {
	application, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := application.Resolver().DeleteToken(ctx); err != nil {
		return &tokenError{err: err}
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, "deleted token from keychain")
	return err
}

func tokenGenerateAction(ctx context.Context, cmd *cli.Command) error {
	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}

	if cmd.Bool("store") {
		application, cleanup, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := application.Resolver().StoreToken(ctx, token); err != nil {
			return &tokenError{err: err}
		}
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, token)
	return err
}

// readTokenInput returns the candidate token from the positional argument, the
// --from-env variable, or stdin (without echo on a terminal), in that order.
// The argument is passed through unchanged; env and stdin input are trimmed.
func readTokenInput(ctx context.Context, cmd *cli.Command) (string, error) {
	if cmd.NArg() > 1 {
		return "", fmt.Errorf("expected at most one token argument, got %d", cmd.NArg())
	}
	if cmd.NArg() == 1 {
		if cmd.IsSet("from-env") {
			return "", errors.New("token argument and --from-env are mutually exclusive")
		}
		return cmd.Args().First(), nil
	}

	if name := cmd.String("from-env"); name != "" {
		source, err := tokenstore.NewEnvStore(name)
		if err != nil {
			return "", err
		}
		token, err := source.Read(ctx)
		if err != nil {
			return "", fmt.Errorf("environment variable %s: %w", name, err)
		}
		return token, nil
	}

	in := cmd.Root().Reader
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		errOut := cmd.Root().ErrWriter
		_, _ = fmt.Fprint(errOut, "Auth token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
