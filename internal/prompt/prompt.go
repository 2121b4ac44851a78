// Package prompt resolves the account password from an environment
// variable or by prompting the operator on the terminal. The value is
// cached after the first successful retrieval.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

type Source struct {
	envVar string

	once  sync.Once
	value string
	err   error
}

func NewSource(envVar string) *Source {
	return &Source{envVar: strings.TrimSpace(envVar)}
}

// Get returns the cached password or resolves it on the first call. When
// the environment variable is set its exact value is used; otherwise the
// operator is prompted on stderr with echo disabled.
func (s *Source) Get() (string, error) {
	s.once.Do(func() {
		if s.envVar != "" {
			if value, ok := os.LookupEnv(s.envVar); ok {
				if strings.TrimSpace(value) == "" {
					s.err = fmt.Errorf("%s is set but empty", s.envVar)
					return
				}
				s.value = value
				return
			}
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			if s.envVar != "" {
				s.err = fmt.Errorf("password required; set %s or run interactively", s.envVar)
			} else {
				s.err = errors.New("password required and no terminal available")
			}
			return
		}

		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			s.err = fmt.Errorf("failed to read password: %w", err)
			return
		}

		password := string(raw)
		if strings.TrimSpace(password) == "" {
			s.err = errors.New("password cannot be empty")
			return
		}

		s.value = password
	})

	return s.value, s.err
}
