// Package keyring provides secure storage for connection secrets such
// as WireGuard private keys. It uses the system keyring when available,
// falling back to an encrypted local file when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/yllada/nm-connection-editor/common"
)

// serviceName is the identifier used in the system keyring.
const serviceName = "nm-connection-editor"

// Common errors returned by keyring operations.
var (
	ErrNotFound    = errors.New("secret not found")
	ErrUnavailable = errors.New("keyring service unavailable")
)

// store is the secret storage backend. A single instance backs the
// package-level functions.
type store struct {
	mu        sync.RWMutex
	useLocal  bool
	secrets   map[string]string
	localFile string
	aesKey    []byte
}

var (
	defaultStore *store
	storeOnce    sync.Once
)

func getStore() *store {
	storeOnce.Do(func() {
		defaultStore = &store{}
		defaultStore.init()
	})
	return defaultStore
}

// init probes the system keyring and falls back to encrypted local
// storage if it is unusable.
func (s *store) init() {
	probe := serviceName + "-probe"
	if err := keyring.Set(serviceName, probe, "probe"); err == nil {
		keyring.Delete(serviceName, probe)
		return
	}

	s.useLocal = true
	s.secrets = make(map[string]string)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	configDir := filepath.Join(homeDir, ".config", common.ConfigDirName)
	os.MkdirAll(configDir, 0700)
	s.localFile = filepath.Join(configDir, common.SecretsFileName)

	// Key the fallback file to this machine and user.
	hostname, _ := os.Hostname()
	keyData := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, machineID(), os.Getuid())
	hash := sha256.Sum256([]byte(keyData))
	s.aesKey = hash[:]

	s.loadLocal()
}

func machineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err != nil {
		return "default-machine-id"
	}
	return strings.TrimSpace(string(data))
}

func (s *store) loadLocal() {
	data, err := os.ReadFile(s.localFile)
	if err != nil {
		return
	}
	plaintext, err := s.decrypt(data)
	if err != nil {
		return
	}
	json.Unmarshal(plaintext, &s.secrets)
}

func (s *store) saveLocal() error {
	s.mu.RLock()
	data, err := json.Marshal(s.secrets)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := s.encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.localFile, encrypted, 0600)
}

func (s *store) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.aesKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (s *store) decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.aesKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Store saves a secret for a connection UUID.
func Store(connUUID, secret string) error {
	if connUUID == "" {
		return errors.New("connection UUID cannot be empty")
	}
	if secret == "" {
		return errors.New("secret cannot be empty")
	}

	s := getStore()
	if !s.useLocal {
		if err := keyring.Set(serviceName, connUUID, secret); err == nil {
			return nil
		}
		// Keyring went away after the probe; switch to the fallback.
		s.useLocal = true
		if s.secrets == nil {
			s.init()
		}
	}

	s.mu.Lock()
	s.secrets[connUUID] = secret
	s.mu.Unlock()
	return s.saveLocal()
}

// Get retrieves the secret for a connection UUID.
func Get(connUUID string) (string, error) {
	if connUUID == "" {
		return "", errors.New("connection UUID cannot be empty")
	}

	s := getStore()
	if !s.useLocal {
		secret, err := keyring.Get(serviceName, connUUID)
		if err == nil {
			return secret, nil
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			return "", ErrUnavailable
		}
		return "", ErrNotFound
	}

	s.mu.RLock()
	secret, exists := s.secrets[connUUID]
	s.mu.RUnlock()
	if !exists {
		return "", ErrNotFound
	}
	return secret, nil
}

// Delete removes the secret for a connection UUID.
func Delete(connUUID string) error {
	if connUUID == "" {
		return errors.New("connection UUID cannot be empty")
	}

	s := getStore()
	if !s.useLocal {
		keyring.Delete(serviceName, connUUID)
		return nil
	}

	s.mu.Lock()
	delete(s.secrets, connUUID)
	s.mu.Unlock()
	return s.saveLocal()
}

// Exists checks whether a secret is stored for a connection UUID.
func Exists(connUUID string) bool {
	_, err := Get(connUUID)
	return err == nil
}
