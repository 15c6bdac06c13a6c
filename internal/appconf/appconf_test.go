package appconf

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/itinerary"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
	}{
		{"development", Development},
		{"test", Test},
		{"production", Production},
		{"prod", Production},
		{" Production ", Production},
		{"", Development},
		{"staging", Development},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvFlagToEnvironment(tt.input))
		})
	}

	assert.Equal(t, "production", Production.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "development", Development.String())
}

func TestDefaultVizConfig(t *testing.T) {
	viz := DefaultVizConfig()

	assert.Equal(t, itinerary.Coord{Lat: 46.603354, Lng: 1.888334}, viz.Center)
	assert.Equal(t, 5.5, viz.Zoom)
	assert.Equal(t, 50, viz.Curve.NumPoints)
	assert.Equal(t, 0.2, viz.Curve.CurvatureFactor)
	assert.Equal(t, 19, viz.TileLayer.MaxZoom)
	assert.Equal(t, "#2563eb", viz.Styles.LineDefault.Color)
	assert.Equal(t, "#1d4ed8", viz.Styles.LineHighlight.Color)
	assert.Equal(t, "#10b981", viz.Styles.MarkerStart.FillColor)
	assert.Equal(t, "#f59e0b", viz.Styles.MarkerConnection.FillColor)
	assert.Equal(t, "#dc2626", viz.Styles.MarkerEnd.FillColor)
	assert.Equal(t, [2]int{50, 50}, viz.BoundsPadding)
	assert.Equal(t, 0.05, viz.FitMargin)
	assert.NotEmpty(t, viz.Messages.NoResults)
	assert.Equal(t, cards.DefaultTexts(), viz.Messages.CardTexts())

	opts := viz.ManagerOptions(slog.Default())
	assert.Equal(t, viz.Center, opts.Center)
	assert.Equal(t, viz.Styles, opts.Styles)
	assert.NotNil(t, opts.Logger)
}

func TestConfigFileLoading(t *testing.T) {
	t.Run("loads valid config file", func(t *testing.T) {
		fileCfg, err := LoadFromFile("testdata/config_valid.yaml")
		require.NoError(t, err)
		require.NotNil(t, fileCfg)

		appCfg := fileCfg.ToAppConfig()
		assert.Equal(t, 3000, appCfg.Port)
		assert.Equal(t, Development, appCfg.Env)
		assert.Equal(t, []string{"test"}, appCfg.ApiKeys)
		assert.Equal(t, 100, appCfg.RateLimit)
		assert.True(t, appCfg.Verbose)
		assert.Equal(t, "http://localhost:8000", appCfg.BackendURL)
		assert.Equal(t, DefaultBackendTimeout, appCfg.BackendTimeout)

		assert.Equal(t, DefaultVizConfig(), fileCfg.ToVizConfig())
	})

	t.Run("loads full config file with map overrides", func(t *testing.T) {
		fileCfg, err := LoadFromFile("testdata/config_full.yaml")
		require.NoError(t, err)

		appCfg := fileCfg.ToAppConfig()
		assert.Equal(t, 8080, appCfg.Port)
		assert.Equal(t, Production, appCfg.Env)
		assert.Equal(t, []string{"key1", "key2", "key3"}, appCfg.ApiKeys)
		assert.Equal(t, 50, appCfg.RateLimit)
		assert.Equal(t, []string{"key3"}, appCfg.RateLimitExemptKeys)
		assert.Equal(t, 3*time.Second, appCfg.BackendTimeout)

		viz := fileCfg.ToVizConfig()
		assert.Equal(t, itinerary.Coord{Lat: 45.75, Lng: 4.85}, viz.Center)
		assert.Equal(t, 7.0, viz.Zoom)
		assert.Equal(t, 20, viz.Curve.NumPoints)
		assert.Equal(t, 0.35, viz.Curve.CurvatureFactor)
		assert.Equal(t, "#ff0000", viz.Styles.LineHighlight.Color)
		assert.Equal(t, "#2563eb", viz.Styles.LineDefault.Color, "unset styles keep defaults")
		assert.Equal(t, "Correspondance", viz.Labels.Connection)
		assert.Equal(t, [2]int{20, 30}, viz.BoundsPadding)
		assert.Equal(t, 0.1, viz.FitMargin)
		assert.Equal(t, 0.1, viz.ManagerOptions(nil).FitMargin)
		assert.Equal(t, "Aucun trajet trouvé pour cette recherche.", viz.Messages.NoResults)
		assert.Equal(t, DefaultVizConfig().TileLayer, viz.TileLayer)

		texts := viz.Messages.CardTexts()
		assert.Equal(t, "Correspondance à", texts.ConnectionAt)
		assert.Equal(t, "Show details", texts.ShowDetails, "unset messages keep defaults")
	})

	t.Run("fails on invalid config file", func(t *testing.T) {
		fileCfg, err := LoadFromFile("testdata/config_invalid.yaml")
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "Port")
		assert.Contains(t, err.Error(), "NumPoints")
		assert.Contains(t, err.Error(), "FitMargin")
		assert.Contains(t, err.Error(), "RateLimitExempt[0]")
	})

	t.Run("fails on malformed YAML", func(t *testing.T) {
		fileCfg, err := LoadFromFile("testdata/config_malformed.yaml")
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "failed to parse YAML config")
	})

	t.Run("fails on nonexistent file", func(t *testing.T) {
		fileCfg, err := LoadFromFile("testdata/nonexistent.yaml")
		assert.Error(t, err)
		assert.Nil(t, fileCfg)
		assert.Contains(t, err.Error(), "failed to stat config file")
	})
}

func TestDefaultFileConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultFileConfig().Validate())
}
