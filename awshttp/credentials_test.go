package awshttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidate(t *testing.T) {
	assert.NoError(t, Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret"}.Validate())
	assert.Error(t, Credentials{AccessKeyID: "AKID"}.Validate())
	assert.Error(t, Credentials{SecretAccessKey: "secret"}.Validate())
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDENV")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secretenv")
	t.Setenv("AWS_SESSION_TOKEN", "tokenenv")

	creds, err := CredentialsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "AKIDENV", creds.AccessKeyID)
	assert.Equal(t, "secretenv", creds.SecretAccessKey)
	assert.Equal(t, "tokenenv", creds.SessionToken)
}

func TestCredentialsFromEnvMissing(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, err := CredentialsFromEnv()
	assert.Error(t, err)
}
