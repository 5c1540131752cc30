package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/internal/config"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courierdz"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEnabledFamilies(t *testing.T) {
	cfg := &config.Config{EcotrackEnabled: true, MaystroEnabled: true}
	assert.Equal(t, []courierdz.Family{courierdz.FamilyEcotrack, courierdz.FamilyMaystro}, enabledFamilies(cfg))
}

func TestProvidersCmd_JSON(t *testing.T) {
	t.Setenv("YALIDINE_ENABLED", "false")
	t.Setenv("SANDBOX_ENABLED", "true")

	out, err := runCmd(t, "providers", "--json")
	require.NoError(t, err)

	var providers []courier.Metadata
	require.NoError(t, json.Unmarshal([]byte(out), &providers))
	names := map[string]bool{}
	for _, p := range providers {
		names[p.Name] = true
	}
	assert.True(t, names[courier.Mock])
	assert.True(t, names[courier.ZRExpress])
	assert.False(t, names[courier.Yalidine])
}

func TestProvidersCmd_Table(t *testing.T) {
	out, err := runCmd(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Maystro Delivery")
}

func TestCheckCmd_Sandbox(t *testing.T) {
	t.Setenv("SANDBOX_ENABLED", "true")

	out, err := runCmd(t, "check", courier.Mock, "--cred", "token=abc")
	require.NoError(t, err)
	assert.Contains(t, out, "credentials valid")

	_, err = runCmd(t, "check", courier.Mock, "--cred", "token=invalid")
	assert.Error(t, err)
}

func TestRatesCmd_Sandbox(t *testing.T) {
	t.Setenv("SANDBOX_ENABLED", "true")

	out, err := runCmd(t, "rates", courier.Mock, "--cred", "token=abc", "--to", "16")
	require.NoError(t, err)

	var rates []courier.RateEntry
	require.NoError(t, json.Unmarshal([]byte(out), &rates))
	require.Len(t, rates, 1)
	assert.Equal(t, float64(16), rates[0]["wilaya_id"])
}

func TestRatesCmd_UnknownProvider(t *testing.T) {
	_, err := runCmd(t, "rates", "Nowhere", "--cred", "token=abc")
	assert.ErrorIs(t, err, courier.ErrInvalidProvider)
}
