package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisismap/signal-aggregator/internal/domain"
)

func TestSerializeRecord(t *testing.T) {
	t.Run("keyed by record id with kind and run headers", func(t *testing.T) {
		outage := domain.Outage{
			ID:          "out-abc",
			Country:     "Iran",
			CountryCode: "IR",
			Type:        domain.OutageInternet,
			Severity:    domain.SeverityTotal,
		}

		msg, err := serializeRecord("run-1", "outage", outage.ID, outage)
		require.NoError(t, err)

		assert.Equal(t, []byte("out-abc"), msg.Key)

		var decoded domain.Outage
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "IR", decoded.CountryCode)
		assert.Equal(t, domain.SeverityTotal, decoded.Severity)

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "outage", headers["kind"])
		assert.Equal(t, "run-1", headers["run_id"])
	})

	t.Run("arc record", func(t *testing.T) {
		arc := domain.ConflictArc{ID: "arc-rus-ukr", Intensity: domain.IntensityCritical}

		msg, err := serializeRecord("run-2", "arc", arc.ID, arc)
		require.NoError(t, err)
		assert.Equal(t, []byte("arc-rus-ukr"), msg.Key)

		var decoded domain.ConflictArc
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, domain.IntensityCritical, decoded.Intensity)
	})
}
