package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignerMetrics_NilReceiver(t *testing.T) {
	var m *DesignerMetrics

	assert.NotPanics(t, func() {
		m.RecordSave(context.Background(), "global", 3, nil)
		m.RecordLoad(context.Background(), "quotation", false)
	})
}

func TestDesignerMetrics_Record(t *testing.T) {
	m, err := NewDesignerMetrics()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordSave(context.Background(), "quotation", 5, nil)
		m.RecordSave(context.Background(), "quotation", 5, errors.New("boom"))
		m.RecordLoad(context.Background(), "global", true)
	})
}

func TestProvider_DisabledIsNoop(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPanicCounter(t *testing.T) {
	count := PanicCounter()

	assert.NotPanics(t, func() {
		count(context.Background(), "/api/v1/designer/preview/:quotationId")
	})
}
