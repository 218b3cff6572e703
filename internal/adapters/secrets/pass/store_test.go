package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geminiKey = "tenderlogic/oracle/gemini"

type call struct {
	stdin string
	args  []string
}

func scripted(calls *[]call, stdout, stderr string, err error) runner {
	return func(_ context.Context, stdin string, args ...string) (string, string, error) {
		*calls = append(*calls, call{stdin: stdin, args: args})
		return stdout, stderr, err
	}
}

func TestStoreCommands(t *testing.T) {
	t.Parallel()

	var calls []call
	store := &Store{run: scripted(&calls, "AIza-key\nurl: aistudio.google.com\n", "", nil)}
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, geminiKey, "AIza-key"))
	value, err := store.Get(ctx, geminiKey)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, geminiKey))

	assert.Equal(t, "AIza-key", value)
	assert.Equal(t, []call{
		{stdin: "AIza-key\n", args: []string{"insert", "--multiline", "--force", geminiKey}},
		{args: []string{"show", geminiKey}},
		{args: []string{"rm", "--force", geminiKey}},
	}, calls)
}

func TestStoreMapsMissingEntry(t *testing.T) {
	t.Parallel()

	var calls []call
	stderr := "Error: tenderlogic/oracle/gemini is not in the password store."
	store := &Store{run: scripted(&calls, "", stderr, errors.New("exit status 1"))}

	_, err := store.Get(context.Background(), geminiKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	require.NoError(t, store.Delete(context.Background(), geminiKey))
}

func TestStoreReportsCommandFailures(t *testing.T) {
	t.Parallel()

	var calls []call
	store := &Store{run: scripted(&calls, "", "gpg: decryption failed: No secret key", errors.New("exit status 2"))}

	_, err := store.Get(context.Background(), geminiKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass show tenderlogic/oracle/gemini")
	assert.ErrorContains(t, err, "No secret key")

	unavailable := &Store{run: scripted(&calls, "", "", ErrUnavailable)}
	err = unavailable.Put(context.Background(), geminiKey, "x")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	var calls []call
	store := &Store{run: scripted(&calls, "", "", nil)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, geminiKey, "x"), context.Canceled)
	assert.Empty(t, calls)
}
