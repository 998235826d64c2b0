package awshttp

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Credentials are caller-owned. The library never mutates, logs, or
// persists them. The secret access key never leaves this process; the
// access key id, the session token and the derived signature are sent.
type Credentials struct {
	AccessKeyID     string `validate:"required"`
	SecretAccessKey string `validate:"required"`
	// SessionToken is set for temporary credentials. It is sent as
	// x-amz-security-token but never signed.
	SessionToken string
}

// Validate checks that the non-optional fields are present. Signing itself
// never validates credentials.
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("error validating credentials: %w", err)
	}
	return nil
}

// CredentialsFromEnv reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN, loading a .env file first if one exists.
func CredentialsFromEnv() (Credentials, error) {
	// Missing .env is fine, the process env may already be populated
	_ = godotenv.Load()

	creds := Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
