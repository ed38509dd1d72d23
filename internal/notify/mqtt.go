package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mqttcommon "digiplot/common/mqtt"
)

// DefaultTopicPrefix roots the per-recipient MQTT topics.
const DefaultTopicPrefix = "digiplot/notifications"

// ErrNotConnected is returned while the broker connection is down.
var ErrNotConnected = errors.New("mqtt client not connected")

// MQTTPublisher sends each event to <prefix>/<recipient_type>/<recipient_id>.
type MQTTPublisher struct {
	client *mqttcommon.Client
	prefix string
	qos    byte
}

func NewMQTTPublisher(client *mqttcommon.Client, prefix string, qos byte) *MQTTPublisher {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTPublisher{client: client, prefix: prefix, qos: qos}
}

// Topic returns the topic an event is published on.
func (p *MQTTPublisher) Topic(ev Event) string {
	if ev.Notification == nil {
		return p.prefix
	}
	return fmt.Sprintf("%s/%s/%d", p.prefix, ev.Notification.RecipientType, ev.Notification.RecipientID)
}

func (p *MQTTPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.client.Publish(p.Topic(ev), p.qos, false, payload)
}
