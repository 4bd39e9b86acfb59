package estado

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/model"
)

// SesionEstado is the per-session lifecycle state. Every write operation is
// gated on SesionLista: a save can never race ahead of a slow load and wipe
// the remote document with an empty one.
type SesionEstado int

const (
	SesionInactiva SesionEstado = iota
	SesionCargando
	SesionLista
	SesionFallida
)

func (s SesionEstado) String() string {
	switch s {
	case SesionInactiva:
		return "inactiva"
	case SesionCargando:
		return "cargando"
	case SesionLista:
		return "lista"
	case SesionFallida:
		return "fallida"
	default:
		return "desconocido"
	}
}

// EncoladorEspejo hands mirror writes to the async worker pool. When nil the
// store mirrors synchronously.
type EncoladorEspejo interface {
	EncolarEspejo(ctx context.Context, email string, doc *model.Documento) error
}

// Store is the per-session state container holding one user's whole ledger
// document. All business mutations go through Aplicar as synchronous
// transformations; persistence is a debounced side effect applied after a
// successful transition, never interleaved with business logic.
type Store struct {
	email    string
	cliente  Cliente
	respaldo Respaldo
	espejo   EncoladorEspejo
	retardo  time.Duration

	ctx    context.Context // session lifetime; Cerrar cancels it
	cancel context.CancelFunc

	mu          sync.Mutex
	estado      SesionEstado
	doc         *model.Documento
	gen         int // load generation; a newer load supersedes an in-flight one
	cancelCarga context.CancelFunc
	timer       *time.Timer
	pendiente   bool
}

// NewStore builds an idle store for one user session.
func NewStore(email string, cliente Cliente, respaldo Respaldo, espejo EncoladorEspejo, retardo time.Duration) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		email:    email,
		cliente:  cliente,
		respaldo: respaldo,
		espejo:   espejo,
		retardo:  retardo,
		ctx:      ctx,
		cancel:   cancel,
		estado:   SesionInactiva,
		doc:      model.NuevoDocumento(),
	}
}

func (s *Store) Email() string { return s.email }

// Estado returns the current session state.
func (s *Store) Estado() SesionEstado {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado
}

// Cargar fetches the remote document and transitions the session to Lista.
// It blocks until the load settles. A concurrent Cargar supersedes this one:
// the in-flight request is cancelled and its result discarded.
//
// Failure path: remote unreachable → local mirror; mirror missing too →
// SesionFallida, with every write withheld until AceptarVacio or a retry.
func (s *Store) Cargar() error {
	s.mu.Lock()
	if s.cancelCarga != nil {
		s.cancelCarga() // supersede the in-flight load
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelCarga = cancel
	s.gen++
	gen := s.gen
	s.estado = SesionCargando
	s.mu.Unlock()

	doc, err := s.cliente.CargarDocumento(ctx, s.email)
	if err != nil {
		log.Warn().Str("email", s.email).Err(err).Msg("carga remota falló, consultando respaldo local")
		doc, err = s.respaldo.Cargar(s.email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer load took over while we were in flight.
		return nil
	}
	s.cancelCarga = nil
	if err != nil {
		s.estado = SesionFallida
		log.Error().Str("email", s.email).Err(err).Msg("sin estado remoto ni respaldo local")
		return apierror.CargaEstado("no se pudo cargar el estado", err)
	}
	s.doc = doc
	s.estado = SesionLista
	log.Info().Str("email", s.email).Msg("estado cargado")
	return nil
}

// AceptarVacio is the explicit empty-is-acceptable path out of a failed
// load: the session starts from an empty document and saving is re-enabled.
func (s *Store) AceptarVacio() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado != SesionFallida {
		return apierror.Validacion("la sesión no está en estado fallida")
	}
	s.doc = model.NuevoDocumento()
	s.estado = SesionLista
	return nil
}

// Aplicar runs a mutation against the document. The mutation must be a pure
// transformation: if it returns an error no state change is kept and nothing
// is persisted. On success a debounced save is scheduled; mutations inside
// the window coalesce into a single write of the latest state.
func (s *Store) Aplicar(fn func(doc *model.Documento) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado != SesionLista {
		return apierror.CargaEstado("la sesión no está lista para escribir", nil)
	}
	borrador := s.doc.Clone()
	if err := fn(borrador); err != nil {
		return err
	}
	s.doc = borrador
	s.programarGuardado()
	return nil
}

// Snapshot returns a deep copy of the current document for derived views.
func (s *Store) Snapshot() (*model.Documento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado != SesionLista {
		return nil, apierror.CargaEstado("la sesión no está lista", nil)
	}
	return s.doc.Clone(), nil
}

// Cerrar abandons the session: the debounce timer stops and any in-flight
// network operation is cancelled so it cannot cross-contaminate the next
// user's state. The local mirror gets a last synchronous write — mirroring
// is local and cheap, unsent remote saves are accepted loss on logout.
func (s *Store) Cerrar() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	lista := s.estado == SesionLista
	doc := s.doc
	s.estado = SesionInactiva
	s.mu.Unlock()

	s.cancel()
	if lista {
		if err := s.respaldo.Guardar(s.email, doc); err != nil {
			log.Warn().Str("email", s.email).Err(err).Msg("espejo final falló")
		}
	}
}

// programarGuardado schedules the debounced flush. Must be called under mu.
func (s *Store) programarGuardado() {
	s.pendiente = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.retardo, s.guardar)
	} else {
		s.timer.Reset(s.retardo)
	}
}

// guardar is the debounced flush: one PUT of the latest state per window.
// A failed remote save is non-fatal — the mirror still gets the data and the
// next mutation's cycle retries implicitly.
func (s *Store) guardar() {
	s.mu.Lock()
	if s.estado != SesionLista || !s.pendiente {
		s.timer = nil
		s.mu.Unlock()
		return
	}
	s.pendiente = false
	s.timer = nil
	doc := s.doc.Clone()
	s.mu.Unlock()

	if err := s.cliente.GuardarDocumento(s.ctx, s.email, doc); err != nil {
		log.Warn().Str("email", s.email).Err(err).Msg("guardado remoto falló, el respaldo local conserva los datos")
	}

	if s.espejo != nil {
		if err := s.espejo.EncolarEspejo(s.ctx, s.email, doc); err == nil {
			return
		}
	}
	if err := s.respaldo.Guardar(s.email, doc); err != nil {
		log.Error().Str("email", s.email).Err(err).Msg("espejo local falló")
	}
}
