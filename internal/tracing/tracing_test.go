package tracing

import (
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit(t *testing.T) {

	t.Run("Success - no exporter endpoint", func(t *testing.T) {
		// Arrange
		cfg := &config.Otel{ServiceName: "invitation-storefront", SamplerRatio: 1}

		// Act
		shutdown, err := Init(t.Context(), cfg)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, shutdown)

		_, span := otel.Tracer("test").Start(t.Context(), "op")
		assert.True(t, span.SpanContext().IsSampled())
		span.End()

		assert.NoError(t, shutdown(t.Context()))
	})
}
