package pace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/racepace/internal/openf1"
)

type driverSourceFunc func(ctx context.Context, sessionKey int64) ([]openf1.Driver, error)

func (f driverSourceFunc) Drivers(ctx context.Context, sessionKey int64) ([]openf1.Driver, error) {
	return f(ctx, sessionKey)
}

func TestRoster_TextAndNumericLookupsAgree(t *testing.T) {
	roster := NewRoster([]openf1.Driver{{Number: "16", LastName: "Leclerc", TeamName: "Ferrari"}})

	byText, ok := roster.Lookup("16")
	require.True(t, ok)
	byInt, ok := roster.Lookup(16)
	require.True(t, ok)
	byFloat, ok := roster.Lookup(16.0)
	require.True(t, ok)

	assert.Equal(t, byText, byInt)
	assert.Equal(t, byText, byFloat)
	assert.Equal(t, "LECLERC", roster.LastName(16))
	assert.Equal(t, "Ferrari", roster.Team("16"))
}

func TestRoster_MissingDegrades(t *testing.T) {
	roster := NewRoster([]openf1.Driver{{Number: "20", LastName: "", TeamName: ""}})

	assert.Equal(t, "N/A", roster.LastName("99"))
	assert.Equal(t, "Unknown", roster.Team("99"))
	assert.Equal(t, "N/A", roster.LastName("20"), "blank name")
	assert.Equal(t, "Unknown", roster.Team("20"), "blank team")

	var zero Roster
	assert.Equal(t, 0, zero.Len())
	assert.Equal(t, "N/A", zero.LastName("1"))
}

func TestNewRoster_LaterDuplicateWins(t *testing.T) {
	roster := NewRoster([]openf1.Driver{
		{Number: "3", LastName: "Ricciardo", TeamName: "RB"},
		{Number: "3", LastName: "Ricciardo", TeamName: "AlphaTauri"},
		{Number: "", LastName: "Nobody"},
	})
	assert.Equal(t, 1, roster.Len())
	assert.Equal(t, "AlphaTauri", roster.Team(3))
}

func TestResolveRoster(t *testing.T) {
	src := driverSourceFunc(func(_ context.Context, key int64) ([]openf1.Driver, error) {
		assert.Equal(t, int64(9158), key)
		return []openf1.Driver{{Number: "1", LastName: "Verstappen", TeamName: "Red Bull Racing"}}, nil
	})

	roster, err := ResolveRoster(context.Background(), src, 9158)
	require.NoError(t, err)
	assert.Equal(t, "VERSTAPPEN", roster.LastName(1))
}

func TestResolveRoster_FailureYieldsEmptyRoster(t *testing.T) {
	boom := &openf1.Error{Kind: openf1.ErrNetwork, Op: "list drivers", Err: errors.New("timeout")}
	src := driverSourceFunc(func(context.Context, int64) ([]openf1.Driver, error) { return nil, boom })

	roster, err := ResolveRoster(context.Background(), src, 1)
	assert.ErrorIs(t, err, openf1.ErrNetwork)
	assert.Equal(t, 0, roster.Len())
	assert.Equal(t, "N/A", roster.LastName("1"))
	assert.Equal(t, "Unknown", roster.Team("1"))
}
