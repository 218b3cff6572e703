package ports

import "context"

// SecretStore holds oracle credentials outside the database file. Keys are
// slash-separated paths such as "tenderlogic/oracle/gemini".
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
