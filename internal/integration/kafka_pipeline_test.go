//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/microplastics-etl/internal/adapter/filesystem"
	"github.com/couchcryptid/microplastics-etl/internal/adapter/kafka"
	"github.com/couchcryptid/microplastics-etl/internal/adapter/tabular"
	"github.com/couchcryptid/microplastics-etl/internal/config"
	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/indices"
	"github.com/couchcryptid/microplastics-etl/internal/observability"
	"github.com/couchcryptid/microplastics-etl/internal/pipeline"
	"github.com/couchcryptid/microplastics-etl/internal/viz"
)

const testSinkTopic = "test-documents"

const fixture = "Ocean,Region,Country,Microplastics measurement,Latitude (degree),Longitude(degree),Water Sample Depth (m),Sampling Method,Marine Setting,Date (MM-DD-YYYY)\n" +
	"Atlantic,North,Spain,0.2,41,2,5,Manta net,Ocean,3/1/2010 12:00:00 AM\n" +
	"Atlantic,North,Spain,0.8,42,3,10,Neuston net,Ocean,3/1/2011 12:00:00 AM\n" +
	"Pacific,South,Chile,1.5,-30,-70,,Manta net,Beach,6/15/2011 12:00:00 AM\n" +
	"Pacific,South,Chile,NaN,-31,-71,2,Manta net,Beach,\n"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("microplastics-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesDocuments runs a full pass from a CSV file to both the
// filesystem and a real Kafka broker, then reads every document back.
func TestPipelinePublishesDocuments(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	input := filepath.Join(t.TempDir(), "microplastics.csv")
	require.NoError(t, os.WriteFile(input, []byte(fixture), 0o644))
	outDir := t.TempDir()

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testSinkTopic}
	logger := slog.Default()
	sink := kafka.NewWriter(cfg, logger)
	defer sink.Close()

	p := pipeline.New(
		tabular.NewReader(input, "", logger),
		[]pipeline.Loader{filesystem.NewWriter(outDir, logger), sink},
		viz.NewBuilder(viz.NewRandomSampler(1), viz.DefaultScatterCap, viz.DefaultParallelCap),
		indices.DefaultWeights(),
		logger,
		observability.NewMetricsForTesting(),
	)
	report, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Stats.Retained)
	assert.Equal(t, 1, report.Stats.Dropped)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    testSinkTopic,
		GroupID:  fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	for _, name := range document.Names {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read %s from sink topic", name)

		assert.Equal(t, name, string(msg.Key))
		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, name, headers["document"])
		assert.Equal(t, report.Run.ID, headers["run_id"])

		onDisk, err := os.ReadFile(filepath.Join(outDir, name+".json"))
		require.NoError(t, err)
		assert.JSONEq(t, string(onDisk), string(msg.Value), name)
	}
}
