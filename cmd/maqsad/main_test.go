package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRates(t *testing.T) {
	rates, err := parseRates("USD=12800,eur=13900.5")
	require.NoError(t, err)
	assert.Equal(t, "12800", rates["USD"].String())
	assert.Equal(t, "13900.5", rates["EUR"].String())

	_, err = parseRates("USD")
	assert.Error(t, err)

	_, err = parseRates("USD=abc")
	assert.Error(t, err)
}

func TestEnvDuration(t *testing.T) {
	assert.Equal(t, time.Minute, envDuration("REMIND_TICK_MISSING", time.Minute))

	t.Setenv("REMIND_WINDOW_TEST", "90s")
	assert.Equal(t, 90*time.Second, envDuration("REMIND_WINDOW_TEST", 5*time.Minute))

	t.Setenv("REMIND_WINDOW_TEST", "bogus")
	assert.Equal(t, 5*time.Minute, envDuration("REMIND_WINDOW_TEST", 5*time.Minute))
}
