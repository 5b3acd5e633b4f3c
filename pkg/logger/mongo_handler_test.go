package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (f *fakeCollection) InsertMany(_ context.Context, docs []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range docs {
		f.docs = append(f.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	col := &fakeCollection{}
	h := newMongoHandler(col)

	log := slog.New(h).With("request_id", "rid-1")
	log.Info("order created", "order_id", "o-1")
	log.Debug("dropped below info")
	h.Close()

	require.Len(t, col.docs, 1)
	doc := col.docs[0]
	assert.Equal(t, "order created", doc.Msg)
	assert.Equal(t, "rid-1", doc.RequestID)
	assert.Equal(t, "o-1", doc.Attrs["order_id"])
}

func TestMongoHandlerGroupsPrefixKeys(t *testing.T) {
	col := &fakeCollection{}
	h := newMongoHandler(col)

	slog.New(h).WithGroup("http").Info("request", "status", 201)
	h.Close()

	require.Len(t, col.docs, 1)
	assert.EqualValues(t, 201, col.docs[0].Attrs["http.status"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(m).Info("hello", "k", "v")

	assert.Contains(t, a.String(), "msg=hello")
	assert.Contains(t, b.String(), `"msg":"hello"`)
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := InjectLogger(context.Background(), custom)
	assert.Same(t, custom, WithCtx(ctx))
}
