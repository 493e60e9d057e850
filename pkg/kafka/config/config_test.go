package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " k1:9092, ,k2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "k1:9092" || cfg.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.ConsumerRetryBackoff != DefaultConsumerRetryBackoff {
		t.Errorf("ConsumerRetryBackoff = %s", cfg.ConsumerRetryBackoff)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantMsg string
	}{
		{"compression", EnvKafkaProducerCompression, "brotli", "ProducerCompression"},
		{"acks", EnvKafkaProducerRequireAcks, "2", "ProducerRequireAcks"},
		{"offset", EnvKafkaConsumerStartOffset, "5", "ConsumerStartOffset"},
		{"retries", EnvKafkaConsumerMaxRetries, "-1", "ConsumerMaxRetries"},
		{"session", EnvKafkaConsumerSessionTimeout, "1s", "ConsumerSessionTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantMsg)
			}
		})
	}
}

func TestGetEnvDuration_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("KAFKA_TEST_DURATION", "soon")
	if got := getEnvDuration("KAFKA_TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("getEnvDuration() = %s, want 1s", got)
	}
}
