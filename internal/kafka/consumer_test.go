package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumer_dispatch(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c := &Consumer{log: log}

	msg := kafka.Message{Topic: "booking-notifications", Partition: 2, Offset: 41, Key: []byte("b1")}

	var got kafka.Message
	err := c.dispatch(context.Background(), msg, func(_ context.Context, m kafka.Message) error {
		got = m
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), got.Offset)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, int64(41), entry.Data["offset"])
	assert.Equal(t, 2, entry.Data["partition"])
	assert.Equal(t, "b1", entry.Data["key"])
}

func TestConsumer_dispatchWrapsHandlerError(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := &Consumer{log: log}
	boom := errors.New("smtp down")

	msg := kafka.Message{Topic: "booking-notifications", Partition: 0, Offset: 7}
	err := c.dispatch(context.Background(), msg, func(context.Context, kafka.Message) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "booking-notifications/0@7")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
