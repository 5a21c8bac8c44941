package events

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace})

	p := NewLogPublisher(logger)
	defer p.Close()

	err := p.Publish(context.Background(), TopicPlayback, PlayStatus{SessionID: "s1", Timestamp: 12, Paused: true})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, TopicPlayback) {
		t.Errorf("Expected topic in log output, got %q", out)
	}
	if !strings.Contains(out, "session_id") {
		t.Errorf("Expected encoded payload in log output, got %q", out)
	}
}

func TestLogPublisher_UnencodablePayload(t *testing.T) {
	p := NewLogPublisher(nil)
	if err := p.Publish(context.Background(), "x", make(chan int)); err == nil {
		t.Error("Expected error for unencodable payload")
	}
}

func TestMQTTPublisher_Topic(t *testing.T) {
	p := &MQTTPublisher{prefix: "acholiflixx"}
	if got := p.topic(TopicAgent); got != "acholiflixx/agent/submitted" {
		t.Errorf("Unexpected topic %q", got)
	}

	p.prefix = ""
	if got := p.topic(TopicAgent); got != TopicAgent {
		t.Errorf("Unexpected topic %q", got)
	}
}
