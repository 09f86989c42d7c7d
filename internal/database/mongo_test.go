package database

import (
	"testing"
	"time"

	"devfolio/internal/conf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions_UsesConfiguredTimeout(t *testing.T) {
	opts := clientOptions(conf.MongoConfig{
		URI:     "mongodb://db.internal:27017",
		Timeout: 3 * time.Second,
		AppName: "devfolio-test",
	})

	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
	require.NotNil(t, opts.AppName)
	assert.Equal(t, "devfolio-test", *opts.AppName)
	assert.Equal(t, []string{"db.internal:27017"}, opts.Hosts)
}

func TestClientOptions_FallsBackToDefaultTimeout(t *testing.T) {
	opts := clientOptions(conf.MongoConfig{URI: "mongodb://localhost:27017"})

	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, defaultTimeout, *opts.ServerSelectionTimeout)
	assert.Nil(t, opts.AppName)
}
