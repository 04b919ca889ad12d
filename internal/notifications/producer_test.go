package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaDispatcherPublishesJSON(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	n := New(KindReservationConfirmed, uuid.New(), "session1", uuid.New(), "", samplePayload())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		decoded, err := FromJSON(val)
		if err != nil {
			return err
		}
		if decoded.ID != n.ID || decoded.Kind != KindReservationConfirmed {
			return errors.New("unexpected notification")
		}
		return nil
	})

	d := NewKafkaDispatcherWithProducer(producer, "seat-notifications")
	require.NoError(t, d.Dispatch(context.Background(), n))
	require.NoError(t, d.Close())
}

func TestKafkaDispatcherReportsFailure(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	d := NewKafkaDispatcherWithProducer(producer, "seat-notifications")
	err := d.Dispatch(context.Background(), New(KindSeatReopened, uuid.New(), "session1", uuid.New(), "", samplePayload()))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, d.Close())
}

func TestNotifySwallowsErrors(t *testing.T) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	d := NewKafkaDispatcherWithProducer(producer, "seat-notifications")
	assert.NotPanics(t, func() {
		Notify(context.Background(), d, New(KindSeatReopened, uuid.New(), "session1", uuid.New(), "", samplePayload()))
		Notify(context.Background(), nil, nil)
	})
	require.NoError(t, d.Close())
}

func TestProducerConfig(t *testing.T) {
	cfg := DefaultKafkaProducerConfig().SaramaConfig()
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
}
