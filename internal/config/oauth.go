package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const oauthFileBase = "oauthClient"

// OAuthClientConfig is the desktop OAuth client downloaded from Google Cloud.
// Only needed when the roster is read from, or the allocation published to, Google Sheets.
type OAuthClientConfig struct {
	Installed OAuthInstalled `json:"installed" validate:"required"`
}

// OAuthInstalled represents the installed section of OAuth config
type OAuthInstalled struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url" validate:"required,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

// LoadOAuthClientWithEnv loads oauthClient.<env>.json, falling back to oauthClient.json
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	candidates := []string{oauthFileBase + ".json"}
	if env != "" {
		candidates = append([]string{fmt.Sprintf("%s.%s.json", oauthFileBase, env)}, candidates...)
	}

	for _, path := range searchPaths(candidates) {
		if _, err := os.Stat(path); err == nil {
			return LoadOAuthClientFromPath(path)
		}
	}

	return nil, fmt.Errorf("oauth client file not found in current directory or home directory (looked for %v)", candidates)
}

// LoadOAuthClientFromPath loads and validates the OAuth client configuration from a specific path
func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var oauthCfg OAuthClientConfig
	if err := json.Unmarshal(data, &oauthCfg); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file: %w", err)
	}

	if err := ValidateOAuthClient(&oauthCfg); err != nil {
		return nil, err
	}

	return &oauthCfg, nil
}

// ValidateOAuthClient validates the OAuth client configuration
func ValidateOAuthClient(cfg *OAuthClientConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("oauth client validation failed: %w", err)
	}

	return nil
}

// searchPaths expands each file name to its current directory and home directory locations, in that order
func searchPaths(names []string) []string {
	homeDir, err := os.UserHomeDir()

	var paths []string
	for _, name := range names {
		paths = append(paths, name)
		if err == nil {
			paths = append(paths, filepath.Join(homeDir, name))
		}
	}
	return paths
}
