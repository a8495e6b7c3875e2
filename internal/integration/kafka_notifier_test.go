//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/eiel-forms/internal/adapter/filesystem"
	"github.com/couchcryptid/eiel-forms/internal/adapter/kafka"
	"github.com/couchcryptid/eiel-forms/internal/adapter/render"
	"github.com/couchcryptid/eiel-forms/internal/config"
	"github.com/couchcryptid/eiel-forms/internal/domain"
	"github.com/couchcryptid/eiel-forms/internal/observability"
	"github.com/couchcryptid/eiel-forms/internal/pipeline"
)

const testEventsTopic = "test-forms-generated"

// staticSource serves fixed rows keyed by raw municipality code.
type staticSource struct {
	codes    []string
	deposits map[string][]domain.Deposit
	works    map[string][]domain.Work
}

func (s *staticSource) Municipalities(context.Context) ([]string, error) { return s.codes, nil }

func (s *staticSource) Deposits(_ context.Context, mun string) ([]domain.Deposit, error) {
	return s.deposits[mun], nil
}

func (s *staticSource) Works(_ context.Context, mun string) ([]domain.Work, error) {
	return s.works[mun], nil
}

// startKafka runs a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("eiel-forms-test"),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestPipelinePublishesFormsGenerated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testEventsTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testEventsTopic}
	notifier := kafka.NewWriter(cfg, slog.Default())
	t.Cleanup(func() { _ = notifier.Close() })

	renderer, err := render.New(filepath.Join("..", "..", "templates"),
		"form-agua-template.html.j2", "form-obras-template.html.j2",
		render.WithGlobals(map[string]any{"url_apps_script": "https://s", "url_google_forms": "https://f"}))
	require.NoError(t, err)
	sink, err := filesystem.NewDirWriter(filepath.Join(t.TempDir(), "formularios"))
	require.NoError(t, err)

	src := &staticSource{
		codes: []string{"7", "12"},
		deposits: map[string][]domain.Deposit{
			"7": {{Nombre: "Depósito Alto", Limpieza: "SI"}, {Nombre: "Depósito Bajo"}},
		},
		works: map[string][]domain.Work{
			"12": {{Nombre: "Alumbrado", Cond: domain.CondFinished}},
		},
	}
	names := map[string]string{"007": "San Vicente del Raspeig"}

	p := pipeline.New(src, renderer, sink, names, slog.Default(), observability.NewMetrics(),
		pipeline.WithNotifier(notifier))
	summary, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Municipalities)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testEventsTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = reader.Close() })

	received := make(map[string]domain.FormsGenerated)
	for range 2 {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read forms event")

		var event domain.FormsGenerated
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		assert.Equal(t, string(msg.Key), event.Mun)
		received[string(msg.Key)] = event
	}

	require.Contains(t, received, "007")
	require.Contains(t, received, "012")

	assert.Equal(t, "San Vicente del Raspeig", received["007"].Display)
	assert.Equal(t, []string{"agua_007.html", "obras_007.html"}, baseNames(received["007"].Files))
	assert.Equal(t, 2, received["007"].Deposits)
	assert.Equal(t, 0, received["007"].Works)

	assert.Equal(t, "012", received["012"].Display)
	assert.Equal(t, 0, received["012"].Deposits)
	assert.Equal(t, 1, received["012"].Works)
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
