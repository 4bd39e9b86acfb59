package worker

// espejo_worker.go
// Writes document snapshots to the local mirror. Coalescing happens upstream
// in the store's debounce; each job here is a full, self-contained snapshot,
// so a lost or re-ordered job only costs freshness, never correctness.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/landaetal/despensaapp/internal/estado"
)

// EspejoWorker persists mirror jobs from QueueEspejo.
type EspejoWorker struct {
	respaldo estado.Respaldo
}

func NewEspejoWorker(respaldo estado.Respaldo) *EspejoWorker {
	return &EspejoWorker{respaldo: respaldo}
}

// Process handles a single mirror job.
func (w *EspejoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EspejoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("espejo_worker: invalid payload")
		return
	}
	if payload.Email == "" || payload.Documento == nil {
		log.Error().Msg("espejo_worker: incomplete payload")
		return
	}
	if err := w.respaldo.Guardar(payload.Email, payload.Documento); err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("espejo_worker: mirror write failed")
		return
	}
	log.Debug().Str("email", payload.Email).Msg("espejo_worker: mirror updated")
}
