package auth

import "sync"

// Kind tipo de evento de sesión.
type Kind string

const (
	EventRegistered Kind = "registered"
	EventLoggedIn   Kind = "logged_in"
	EventBanned     Kind = "banned"
	EventUnbanned   Kind = "unbanned"
)

// Event evento de la cuenta de un usuario.
type Event struct {
	Kind   Kind
	UserID string
}

// Notifier difunde eventos de cuenta a suscriptores en proceso. Los
// callbacks se invocan de forma síncrona y sin orden garantizado; un
// suscriptor lento retrasa al resto.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewNotifier construye un notificador vacío.
func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]func(Event){}}
}

// Subscribe registra un callback y devuelve la función para cancelarlo.
// Cancelar dos veces es inocuo.
func (n *Notifier) Subscribe(fn func(Event)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish entrega el evento a todos los suscriptores vigentes. Con n
// nil es un no-op, lo que permite inyectar el notificador como opcional.
func (n *Notifier) Publish(ev Event) {
	if n == nil {
		return
	}
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
