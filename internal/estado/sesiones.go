package estado

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sesiones manages one Store per logged-in user email. Concurrent sessions
// for the SAME user are out of scope (last-write-wins); different emails are
// fully isolated.
type Sesiones struct {
	cliente  Cliente
	respaldo Respaldo
	espejo   EncoladorEspejo
	retardo  time.Duration

	mu     sync.Mutex
	stores map[string]*Store
}

func NewSesiones(cliente Cliente, respaldo Respaldo, espejo EncoladorEspejo, retardo time.Duration) *Sesiones {
	return &Sesiones{
		cliente:  cliente,
		respaldo: respaldo,
		espejo:   espejo,
		retardo:  retardo,
		stores:   make(map[string]*Store),
	}
}

// Abrir returns the session store for the email, creating it on first login.
// A load is started in the background unless the session is already loading
// or ready — re-logging into a live session must not wipe unsaved state.
func (m *Sesiones) Abrir(email string) *Store {
	m.mu.Lock()
	st, ok := m.stores[email]
	if !ok {
		st = NewStore(email, m.cliente, m.respaldo, m.espejo, m.retardo)
		m.stores[email] = st
	}
	m.mu.Unlock()

	switch st.Estado() {
	case SesionInactiva, SesionFallida:
		go func() {
			if err := st.Cargar(); err != nil {
				log.Warn().Str("email", email).Err(err).Msg("carga de sesión falló")
			}
		}()
	}
	return st
}

// Obtener returns the live store for the email, if any.
func (m *Sesiones) Obtener(email string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stores[email]
	return st, ok
}

// Cerrar logs the user out: cancels in-flight work and drops the store.
func (m *Sesiones) Cerrar(email string) {
	m.mu.Lock()
	st, ok := m.stores[email]
	delete(m.stores, email)
	m.mu.Unlock()
	if ok {
		st.Cerrar()
	}
}

// CerrarTodas shuts every session down (server shutdown).
func (m *Sesiones) CerrarTodas() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, st := range m.stores {
		stores = append(stores, st)
	}
	m.stores = make(map[string]*Store)
	m.mu.Unlock()
	for _, st := range stores {
		st.Cerrar()
	}
}
