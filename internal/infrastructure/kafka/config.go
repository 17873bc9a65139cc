package publisher

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

type KafkaConfig struct {
	Brokers    []string
	Topic      string
	GroupID    string
	Username   string
	Password   string
	Mechanism  string
	TLSEnabled bool
}

func (c KafkaConfig) mechanism() (sasl.Mechanism, error) {
	if c.Username == "" {
		return nil, nil
	}
	switch strings.ToUpper(c.Mechanism) {
	case "", "PLAIN":
		return plain.Mechanism{Username: c.Username, Password: c.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, c.Username, c.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, c.Username, c.Password)
	}
	return nil, fmt.Errorf("unsupported sasl mechanism %q", c.Mechanism)
}

func (c KafkaConfig) transport() (*kafka.Transport, error) {
	mechanism, err := c.mechanism()
	if err != nil {
		return nil, err
	}
	t := &kafka.Transport{SASL: mechanism}
	if c.TLSEnabled {
		t.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return t, nil
}

func (c KafkaConfig) dialer() (*kafka.Dialer, error) {
	mechanism, err := c.mechanism()
	if err != nil {
		return nil, err
	}
	d := &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
	}
	if c.TLSEnabled {
		d.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return d, nil
}
