package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"digiplot/common/config"
	mqttcommon "digiplot/common/mqtt"
	"digiplot/internal/domain"

	"github.com/alicebob/miniredis/v2"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() Event {
	return NewNotificationEvent(&domain.Notification{
		ID:            3,
		RecipientID:   7,
		RecipientType: domain.RecipientTenant,
		Message:       "Payment received",
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
}

func TestRedisStreamPublisher_AppendsEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewRedisStreamPublisher(client, "", 100)
	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	msgs, err := client.XRange(context.Background(), DefaultStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &ev))
	assert.Equal(t, EventNotificationCreated, ev.Type)
	assert.Equal(t, int64(7), ev.Notification.RecipientID)
}

func TestRedisStreamPublisher_RecentNewestFirst(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	p := NewRedisStreamPublisher(client, "digiplot:test", 0)
	empty, err := p.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := int64(1); i <= 3; i++ {
		ev := sampleEvent()
		ev.Notification.ID = i
		require.NoError(t, p.Publish(ctx, ev))
	}

	events, err := p.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].Notification.ID)
	assert.Equal(t, int64(2), events[1].Notification.ID)
}

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes; every other paho method is unused.
type fakeClient struct {
	mqtt.Client
	sent    []published
	err     error
	offline bool
}

func (c *fakeClient) IsConnected() bool { return !c.offline }

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return &fakeToken{err: c.err}
}

func TestMQTTPublisher_TopicPerRecipient(t *testing.T) {
	fc := &fakeClient{}
	p := NewMQTTPublisher(mqttcommon.Wrap(fc, &config.MQTTConfig{}), "", 1)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "digiplot/notifications/tenant/7", fc.sent[0].topic)
	assert.Equal(t, byte(1), fc.sent[0].qos)
	assert.Contains(t, string(fc.sent[0].payload), `"Payment received"`)
}

func TestMQTTPublisher_Offline(t *testing.T) {
	fc := &fakeClient{offline: true}
	p := NewMQTTPublisher(mqttcommon.Wrap(fc, &config.MQTTConfig{}), "", 1)

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, fc.sent)
}

func TestMQTTPublisher_BrokerError(t *testing.T) {
	fc := &fakeClient{err: errors.New("not connected")}
	p := NewMQTTPublisher(mqttcommon.Wrap(fc, &config.MQTTConfig{}), "x", 0)

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "not connected")
}

type failing struct{}

func (failing) Publish(context.Context, Event) error { return errors.New("boom") }

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	fc := &fakeClient{}
	m := Multi{failing{}, NewMQTTPublisher(mqttcommon.Wrap(fc, &config.MQTTConfig{}), "", 0), Nop{}}

	err := m.Publish(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, fc.sent, 1)
	assert.NoError(t, Multi{}.Publish(context.Background(), sampleEvent()))
}
