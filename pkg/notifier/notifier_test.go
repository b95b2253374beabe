package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/minimercado-pos/pkg/logger"
)

func TestNotifyInvocaEmOrdemDeRegistro(t *testing.T) {
	n := New(logger.NopLogger{})

	var calls []int
	for i := 1; i <= 3; i++ {
		i := i
		n.Subscribe(func() { calls = append(calls, i) })
	}
	n.Notify()

	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.Equal(t, 3, n.Len())
}

func TestUnsubscribe(t *testing.T) {
	n := New(nil)

	var calls []string
	n.Subscribe(func() { calls = append(calls, "a") })
	h := n.Subscribe(func() { calls = append(calls, "b") })
	n.Subscribe(func() { calls = append(calls, "c") })

	n.Unsubscribe(h)
	n.Notify()

	assert.Equal(t, []string{"a", "c"}, calls)
	assert.Equal(t, 2, n.Len())
}

func TestUnsubscribeHandleInexistente(t *testing.T) {
	n := New(nil)
	n.Subscribe(func() {})

	n.Unsubscribe(Handle("nao-existe"))
	assert.Equal(t, 1, n.Len())
}

func TestNotifyIsolaPanicDeListener(t *testing.T) {
	n := New(logger.NopLogger{})

	called := false
	n.Subscribe(func() { panic("listener quebrado") })
	n.Subscribe(func() { called = true })

	require.NotPanics(t, func() { n.Notify() })
	assert.True(t, called)
}

func TestListenerPodeInscreverDuranteANotificacao(t *testing.T) {
	n := New(nil)

	var lateCalls int
	n.Subscribe(func() {
		n.Subscribe(func() { lateCalls++ })
	})

	require.NotPanics(t, func() { n.Notify() })
	// A inscrição feita durante a rodada só participa da próxima.
	assert.Equal(t, 0, lateCalls)
	assert.Equal(t, 2, n.Len())

	n.Notify()
	assert.Equal(t, 1, lateCalls)
}

func TestHandlesSaoUnicos(t *testing.T) {
	n := New(nil)
	h1 := n.Subscribe(func() {})
	h2 := n.Subscribe(func() {})
	assert.NotEqual(t, h1, h2)
}
