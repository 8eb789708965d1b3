package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

func TestDispatcher_SubscribeOncePerID(t *testing.T) {
	d := NewDispatcher[LoginSucceeded]()

	var calls int
	h := func(LoginSucceeded) { calls++ }

	require.True(t, d.Subscribe("app", h))
	require.False(t, d.Subscribe("app", h))
	assert.Equal(t, 1, d.Len())

	d.Publish(LoginSucceeded{})
	assert.Equal(t, 1, calls)
}

func TestDispatcher_PublishInOrder(t *testing.T) {
	d := NewDispatcher[LoginSucceeded]()

	var got []string
	d.Subscribe("a", func(e LoginSucceeded) { got = append(got, "a:"+e.Account.Username) })
	d.Subscribe("b", func(e LoginSucceeded) { got = append(got, "b:"+e.Account.Username) })

	d.Publish(LoginSucceeded{Account: models.Account{Username: "ada@example.com"}})

	assert.Equal(t, []string{"a:ada@example.com", "b:ada@example.com"}, got)
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	d := NewDispatcher[int]()
	assert.NotPanics(t, func() { d.Publish(1) })
}

func TestDispatcher_HandlerMaySubscribe(t *testing.T) {
	d := NewDispatcher[int]()
	d.Subscribe("outer", func(int) {
		d.Subscribe("inner", func(int) {})
	})
	d.Publish(1)
	assert.Equal(t, 2, d.Len())
}
