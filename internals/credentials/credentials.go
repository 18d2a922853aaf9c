// Package credentials persists mod.io access tokens per game
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

const (
	keyringService = "modio"
	credentialFile = "authentication.json"
)

// Store stores access tokens in the OS keyring. If the keyring is not
// available it falls back to a file in the root directory
type Store struct {
	root string
	// NoKeyRingMode is set once the keyring failed. All following operations use the file
	NoKeyRingMode bool

	mu sync.Mutex
}

// New creates a new Store with `root` as the directory of the fallback file
func New(root string) *Store {
	return &Store{root: root}
}

func keyringUser(gameID uint32) string {
	return fmt.Sprintf("game_%d", gameID)
}

// Get returns the stored token of a game or nil if there is none
func (s *Store) Get(gameID uint32) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.NoKeyRingMode {
		raw, err := keyring.Get(keyringService, keyringUser(gameID))
		switch {
		case err == nil:
			token := &oauth2.Token{}
			if err := json.Unmarshal([]byte(raw), token); err != nil {
				return nil, err
			}
			return token, nil
		case errors.Is(err, keyring.ErrNotFound):
			return nil, nil
		default:
			s.NoKeyRingMode = true
		}
	}

	tokens, err := s.readFile()
	if err != nil {
		return nil, err
	}
	return tokens[keyringUser(gameID)], nil
}

// Set persists the token of a game
func (s *Store) Set(gameID uint32, token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.NoKeyRingMode {
		raw, err := json.Marshal(token)
		if err != nil {
			return err
		}
		if err := keyring.Set(keyringService, keyringUser(gameID), string(raw)); err == nil {
			return nil
		}
		s.NoKeyRingMode = true
	}

	tokens, err := s.readFile()
	if err != nil {
		return err
	}
	tokens[keyringUser(gameID)] = token
	return s.writeFile(tokens)
}

// Delete removes the token of a game. Deleting a missing token is not an error
func (s *Store) Delete(gameID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.NoKeyRingMode {
		err := keyring.Delete(keyringService, keyringUser(gameID))
		if err == nil || errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		s.NoKeyRingMode = true
	}

	tokens, err := s.readFile()
	if err != nil {
		return err
	}
	if _, ok := tokens[keyringUser(gameID)]; !ok {
		return nil
	}
	delete(tokens, keyringUser(gameID))
	return s.writeFile(tokens)
}

// readFile reads all tokens from the fallback file
func (s *Store) readFile() (map[string]*oauth2.Token, error) {
	tokens := map[string]*oauth2.Token{}
	raw, err := os.ReadFile(filepath.Join(s.root, credentialFile))
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &tokens); err != nil {
			return nil, err
		}
		return tokens, nil
	case os.IsNotExist(err):
		// no file is fine
		return tokens, nil
	default:
		return nil, err
	}
}

// writeFile writes all tokens to the fallback file, readable by the current user only
func (s *Store) writeFile(tokens map[string]*oauth2.Token) error {
	if err := os.MkdirAll(s.root, os.ModePerm); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.root, credentialFile), raw, 0600)
}
