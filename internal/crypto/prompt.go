package crypto

import (
	"fmt"
	"os"

	"filescout/internal/errors"

	"golang.org/x/term"
)

// ReadPassphrase prompts on stderr and reads a passphrase from the terminal
// without echo. It fails when stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.NewKind(errors.InvalidOperation, "cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read passphrase")
	}
	return passphrase, nil
}
