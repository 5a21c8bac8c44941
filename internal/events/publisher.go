package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hashicorp/go-hclog"
)

const (
	TopicPlayback     = "playback/status"
	TopicSubscription = "checkout/completed"
	TopicAgent        = "agent/submitted"
	TopicIngest       = "ingest/discarded"
)

// Publisher fans out notifications about finished flows and playback
// changes. Nothing consumes them inside this process.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close()
}

// PlayStatus is the playback payload: current position and pause flag.
type PlayStatus struct {
	SessionID string  `json:"session_id"`
	ContentID string  `json:"content_id"`
	Timestamp float64 `json:"timestamp"`
	Paused    bool    `json:"paused"`
	Ended     bool    `json:"ended,omitempty"`
}

// LogPublisher writes events to the logger. Used when no broker is configured.
type LogPublisher struct {
	logger hclog.Logger
}

func NewLogPublisher(logger hclog.Logger) *LogPublisher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	p.logger.Trace("event", "topic", topic, "payload", string(data))
	return nil
}

func (p *LogPublisher) Close() {}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	TopicPrefix string
}

// MQTTPublisher publishes JSON payloads to <prefix>/<topic>.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
	logger hclog.Logger
}

func NewMQTTPublisher(config MQTTConfig, logger hclog.Logger) (*MQTTPublisher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(config.ClientID)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetAutoReconnect(true)

	opts.OnConnect = func(c mqtt.Client) {
		logger.Info("mqtt connected", "broker", config.Broker)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", config.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTPublisher{client: client, prefix: config.TopicPrefix, logger: logger}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	token := p.client.Publish(p.topic(topic), 0, false, data)
	select {
	case <-token.Done():
		if token.Error() != nil {
			return fmt.Errorf("publishing %s: %w", topic, token.Error())
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *MQTTPublisher) topic(topic string) string {
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "/" + topic
}

func (p *MQTTPublisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
