package config

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including URL syntax, origin patterns, and file accessibility. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("server.addr", c.Server.Addr, isListenAddr),
		criterio.Run("mailtm.base_url", c.MailTM.BaseURL, isHTTPURL),
		criterio.Run("gofile.base_url", c.Gofile.BaseURL, isHTTPURL),
		c.validateOrigins(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Cleanup.Secret == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Cleanup",
			Item:     "secret",
			Message:  fmt.Sprintf("no secret configured (set %s); protected endpoints reject every call", EnvCronSecret),
		})
	}
	if c.Gofile.Token == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Gofile",
			Item:     "token",
			Message:  fmt.Sprintf("no API token configured (set %s); sweeps cannot delete files", EnvGofileToken),
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateOrigins() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.CORS.AllowedOrigins {
		if pattern == "" {
			errs = errs.Append(fmt.Sprintf("cors.allowed_origins[%d]", i), fmt.Errorf("pattern cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("cors.allowed_origins[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func isListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}
