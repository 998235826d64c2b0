package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LookupProvider is used to perform KV lookups for things like AWS key ID
// to key secret. A nil value with a nil error means not found.
type LookupProvider[TKey, TVal any] interface {
	Lookup(ctx context.Context, key TKey) (*TVal, error)
}

// EnvJSONLookupProvider reads a JSON object from an env var, like
// KEYS={"AKID":"secret"}, and serves lookups from it.
type EnvJSONLookupProvider struct {
	m map[string]string
}

// NewEnvJSONLookupProvider will create a new EnvJSONLookupProvider from a given env var.
func NewEnvJSONLookupProvider(envVar string) (EnvJSONLookupProvider, error) {
	envMap := map[string]string{}

	err := json.Unmarshal([]byte(os.Getenv(envVar)), &envMap)
	if err != nil {
		return EnvJSONLookupProvider{}, fmt.Errorf("error in json.Unmarshal for %s: %w", envVar, err)
	}

	return EnvJSONLookupProvider{m: envMap}, nil
}

func (e EnvJSONLookupProvider) Lookup(_ context.Context, key string) (*string, error) {
	if val, exists := e.m[key]; exists {
		return &val, nil
	}

	return nil, nil
}

// PgLookupProvider serves lookups from Postgres. Query must select a single
// column with $1 bound to the key, e.g.
//
//	SELECT secret FROM aws_keys WHERE key_id = $1
type PgLookupProvider struct {
	Pool  *pgxpool.Pool
	Query string
}

func (p PgLookupProvider) Lookup(ctx context.Context, key string) (*string, error) {
	var val string
	err := p.Pool.QueryRow(ctx, p.Query, key).Scan(&val)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error in QueryRow.Scan: %w", err)
	}

	return &val, nil
}
