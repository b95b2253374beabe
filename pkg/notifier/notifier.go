// Package notifier implementa o registro de listeners usado pelos
// repositórios para avisar as visões dependentes após cada persistência.
package notifier

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
)

// Handle identifica uma inscrição e permite cancelá-la.
type Handle string

type subscription struct {
	handle Handle
	fn     func()
}

// Notifier mantém os listeners em ordem de registro e os invoca de forma
// síncrona. A falha (panic) de um listener é isolada e registrada no log para
// que os listeners seguintes ainda sejam notificados.
//
// O Notifier é seguro para uso concorrente e tem mutex próprio. Notify copia
// a lista de listeners e os invoca sem segurar nenhum lock, de modo que um
// listener pode ler de volta o repositório que o notificou ou registrar
// novas inscrições.
type Notifier struct {
	mu   sync.Mutex
	subs []subscription
	log  logger.Logger
}

// New cria um Notifier vazio.
func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Notifier{log: log}
}

// Subscribe registra um listener e retorna o handle da inscrição.
func (n *Notifier) Subscribe(fn func()) Handle {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := Handle(uuid.New().String())
	n.subs = append(n.subs, subscription{handle: h, fn: fn})
	return h
}

// Unsubscribe remove a inscrição do handle informado, preservando a ordem
// dos demais listeners; sem efeito se o handle não existe.
func (n *Notifier) Unsubscribe(h Handle) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.handle == h {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify invoca todos os listeners em ordem de registro. A lista invocada é
// a vigente no início da chamada; inscrições feitas por um listener só
// participam das notificações seguintes.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		n.invoke(s)
	}
}

func (n *Notifier) invoke(s subscription) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("listener falhou durante a notificação",
				"handle", s.handle, "erro", fmt.Sprintf("%v", r))
		}
	}()
	s.fn()
}

// Len retorna o número de listeners registrados.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
