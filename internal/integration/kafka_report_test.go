//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafkacontainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/kafka"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/observability"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/pipeline"
)

const testSinkTopic = "test-storm-impact-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := kafkacontainer.Run(ctx, "confluentinc/confluent-local:7.5.0",
		kafkacontainer.WithClusterID("test-cluster"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

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

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type recordSource struct {
	records   []domain.RawStormRecord
	index     int
	anomalies domain.AnomalyCounts
}

func (s *recordSource) Next(_ context.Context) (domain.RawStormRecord, error) {
	if s.index >= len(s.records) {
		return domain.RawStormRecord{}, io.EOF
	}
	rec := s.records[s.index]
	s.index++
	return rec, nil
}

func (s *recordSource) Anomalies() domain.AnomalyCounts { return s.anomalies }

// TestReportPublishedToKafka runs the pipeline with the Kafka publisher as
// its sink against a real broker and verifies the report round-trips.
func TestReportPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	publisher := kafkaadapter.NewPublisher([]string{broker}, testSinkTopic, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	src := &recordSource{records: []domain.RawStormRecord{
		{EventType: "TORNADO", Fatalities: "5", Injuries: "10", PropDmg: "25", PropDmgExp: "K", CropDmg: "0"},
		{EventType: "FLOOD", Fatalities: "1", Injuries: "2", PropDmg: "3", PropDmgExp: "M", CropDmg: "1", CropDmgExp: "K"},
		{EventType: "HAIL", Fatalities: "0", Injuries: "0", PropDmg: "42", PropDmgExp: "?", CropDmg: "0"},
	}}

	p := pipeline.New([]pipeline.ReportSink{publisher}, discardLogger(), observability.NewMetricsForTesting(), "mock", 2)

	report, err := p.Run(ctx, src)
	require.NoError(t, err)
	require.Equal(t, int64(3), report.Records)

	// Read the report back from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	assert.Equal(t, []byte("mock"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "3", headers["record_count"])
	_, err = time.Parse(time.RFC3339, headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	var received domain.Report
	require.NoError(t, json.Unmarshal(msg.Value, &received))
	assert.Equal(t, report.TopFatalities, received.TopFatalities)
	assert.Equal(t, report.TopInjuries, received.TopInjuries)
	assert.Equal(t, report.TopDamage, received.TopDamage)
	assert.Equal(t, int64(1), received.Anomalies[domain.AnomalyUnmappedPropCode])
}
