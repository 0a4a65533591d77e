package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/logger"
)

type captured struct {
	topic string
	event *pkgkafka.Event
}

type fakePublisher struct {
	published []captured
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, captured{topic: topic, event: event})
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// --- Producer ---

func TestPublishCatalogReloaded(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, testLogger())

	ctx := logger.WithCorrelationID(context.Background(), "corr-7")
	loaded := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, p.PublishCatalogReloaded(ctx, CatalogReloadedData{Version: 3, Source: "file:catalog.json", Records: 40, Groups: 12, LoadedAt: loaded}))

	require.Len(t, pub.published, 1)
	got := pub.published[0]
	assert.Equal(t, "jewelry.catalog.reloaded", got.topic)
	assert.Equal(t, EventCatalogReloaded, got.event.EventType)
	assert.Equal(t, "v3", got.event.AggregateID)
	assert.Equal(t, "corr-7", got.event.CorrelationID)

	var data CatalogReloadedData
	require.NoError(t, got.event.UnmarshalData(&data))
	assert.Equal(t, 40, data.Records)
	assert.True(t, data.LoadedAt.Equal(loaded))
}

func TestPublishCatalogReloaded_PropagatesError(t *testing.T) {
	p := NewProducer(&fakePublisher{err: errors.New("broker down")}, testLogger())
	err := p.PublishCatalogReloaded(context.Background(), CatalogReloadedData{Version: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

// --- Change handler ---

func changedEvent(t *testing.T, eventType string, data any) *pkgkafka.Event {
	t.Helper()
	evt, err := pkgkafka.NewEvent(eventType, "catalog", "catalog", "admin", data)
	require.NoError(t, err)
	return evt
}

func TestChangeHandler_ReloadsOnChange(t *testing.T) {
	var gotCorrelation string
	calls := 0
	h := NewChangeHandler(ReloaderFunc(func(ctx context.Context) error {
		calls++
		gotCorrelation = logger.CorrelationIDFromContext(ctx)
		return nil
	}), testLogger())

	evt := changedEvent(t, EventCatalogChanged, CatalogChangedData{Reason: "price update", ProductIDs: []string{"ETR-001"}})
	evt.WithCorrelationID("corr-9")

	require.NoError(t, h(context.Background(), evt))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "corr-9", gotCorrelation)
}

func TestChangeHandler_IgnoresOtherEvents(t *testing.T) {
	calls := 0
	h := NewChangeHandler(ReloaderFunc(func(context.Context) error { calls++; return nil }), testLogger())

	require.NoError(t, h(context.Background(), changedEvent(t, EventCatalogReloaded, CatalogReloadedData{})))
	assert.Zero(t, calls)
}

func TestChangeHandler_Errors(t *testing.T) {
	h := NewChangeHandler(ReloaderFunc(func(context.Context) error { return errors.New("source unreachable") }), testLogger())
	err := h(context.Background(), changedEvent(t, EventCatalogChanged, CatalogChangedData{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source unreachable")

	bad := &pkgkafka.Event{EventType: EventCatalogChanged, Data: json.RawMessage(`"not an object"`)}
	err = NewChangeHandler(ReloaderFunc(func(context.Context) error { return nil }), testLogger())(context.Background(), bad)
	assert.ErrorContains(t, err, "decode catalog.changed payload")
}

func TestChangeHandler_IsIdempotentWhenWrapped(t *testing.T) {
	calls := 0
	inner := NewChangeHandler(ReloaderFunc(func(context.Context) error { calls++; return nil }), testLogger())
	h := pkgkafka.IdempotentHandler(pkgkafka.NewMemoryIdempotencyStore(time.Hour), inner, testLogger())

	evt := changedEvent(t, EventCatalogChanged, CatalogChangedData{})
	require.NoError(t, h(context.Background(), evt))
	require.NoError(t, h(context.Background(), evt))
	assert.Equal(t, 1, calls)
}
