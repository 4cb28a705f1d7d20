package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiNotifierJoinsErrors(t *testing.T) {
	ok := &recordingNotifier{}
	failing := &recordingNotifier{err: errors.New("kafka unavailable")}
	m := MultiNotifier{ok, nil, failing, LogNotifier{}}

	err := m.Notify(context.Background(), OrderEvent{Type: EventOrderCreated, OrderID: 7})
	assert.ErrorContains(t, err, "kafka unavailable")
	assert.Len(t, ok.Events(), 1)
	assert.Len(t, failing.Events(), 1)

	assert.NoError(t, MultiNotifier{ok}.Notify(context.Background(), OrderEvent{}))
}

func TestDispatcherWithoutNotifier(t *testing.T) {
	d := &dispatcher{}
	d.dispatch(OrderEvent{Type: EventOrdersCleared})
	d.wait()
}
