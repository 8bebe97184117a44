package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const hostKeyBits = 2048

// Initialize writes the default configuration and a host key to dir if they
// don't exist yet, then loads the configuration.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return initializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), dir, logger)
}

func initializeFs(configFs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	switch _, err := configFs.Stat(ConfigurationName); {
	case err == nil:
		logger.Printf("%s already exists, skipping", ConfigurationName)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("Writing %s", ConfigurationName)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	switch _, err := configFs.Stat(PrivateKeyName); {
	case err == nil:
		logger.Printf("%s already exists, skipping", PrivateKeyName)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("Generating %s", PrivateKeyName)
		keyPem, err := generateHostKey()
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(configFs, PrivateKeyName, keyPem, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return loadFs(configFs, dir)
}

// generateHostKey creates a PEM encoded RSA private key.
func generateHostKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, hostKeyBits)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}

// PrivateKeyPem returns the bytes of the configured host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	if c.SSH.HostKeyPath == "" {
		return nil, fs.ErrNotExist
	}
	return afero.ReadFile(afero.NewOsFs(), c.HostKeyFile())
}
