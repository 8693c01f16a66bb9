package mongostore

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// testURIEnv points the round-trip test at a live server.
const testURIEnv = "QUOTATION_TEST_MONGO_URI"

func TestNew_RequiresURI(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestLayoutDoc(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	doc := newLayoutDoc(layout.GlobalKey(), []byte(`[]`), now)
	assert.Equal(t, layoutDoc{
		ID:        "global:default",
		Scope:     "global",
		Owner:     "default",
		Data:      "[]",
		UpdatedAt: now,
	}, doc)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var back layoutDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, doc, back)
}

func TestStore_RoundTrip(t *testing.T) {
	uri := os.Getenv(testURIEnv)
	if uri == "" {
		t.Skipf("%s not set", testURIEnv)
	}

	s, err := New(Config{URI: uri, Database: "quotation_test", Collection: "layouts_" + uuid.NewString()[:8]})
	require.NoError(t, err)

	ctx := t.Context()
	t.Cleanup(func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close(ctx)
	})

	require.NoError(t, s.Ping(ctx))

	key := layout.QuotationKey("5")

	_, ok, err := s.LoadLayout(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveLayout(ctx, key, []byte(`[{"canvasId":"a"}]`)))
	require.NoError(t, s.SaveLayout(ctx, key, []byte(`[{"canvasId":"b"}]`)))

	data, ok, err := s.LoadLayout(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"canvasId":"b"}]`, string(data))

	require.NoError(t, s.DeleteLayout(ctx, key))
	_, ok, err = s.LoadLayout(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
