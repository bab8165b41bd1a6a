package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORS.AllowedOrigins = []string{"https://app.example.com", "http://localhost:*"}

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_BadURLs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MailTM.BaseURL = "ftp://api.mail.tm"
	cfg.Gofile.BaseURL = "not a url"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "mailtm.base_url", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "scheme")
	assert.Equal(t, "gofile.base_url", fieldErrs[1].Field)
}

func TestValidateDeep_BadListenAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = "8080"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "server.addr", fieldErrs[0].Field)
}

func TestValidateDeep_InvalidOriginPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORS.AllowedOrigins = []string{"https://[example.com", ""}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Contains(t, fieldErrs[0].Field, "cors.allowed_origins[0]")
	assert.Contains(t, fieldErrs[0].Err.Error(), "invalid glob")
	assert.Contains(t, fieldErrs[1].Err.Error(), "cannot be empty")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "secret", warnings[0].Item)
	assert.Equal(t, "token", warnings[1].Item)

	cfg.Cleanup.Secret = "s"
	cfg.Gofile.Token = "t"
	assert.Empty(t, cfg.Warnings())
}
