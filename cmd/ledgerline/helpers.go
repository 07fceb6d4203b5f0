package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ledgerline/ledgerline/internal/api"
	"github.com/ledgerline/ledgerline/internal/session"
	"github.com/ledgerline/ledgerline/internal/store"
)

// newStore wires the session file, the API gateway and the state store
// from configuration.
func newStore() (*store.Store, error) {
	sessions, err := session.NewStore()
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(viper.GetString("api.base_url"), "/")
	client := api.New(baseURL, sessions)

	st := store.New(client, sessions)
	if err := st.LoadSession(); err != nil {
		return nil, err
	}

	return st, nil
}

// promptLine reads one line of input with the prompt shown.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it. Falls back to a
// plain prompt when stdin is not a terminal.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}

	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
