package estado

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/landaetal/despensaapp/internal/model"
)

// Respaldo mirrors the last successfully loaded/saved document per user.
// It is consulted only when the remote load fails, so a transient network
// error never forces a session to start from an empty document.
type Respaldo interface {
	Guardar(email string, doc *model.Documento) error
	Cargar(email string) (*model.Documento, error)
}

// ── sqlite mirror ─────────────────────────────────────────────────────────────

// RespaldoEstado is the mirror row: one JSON blob per user email.
type RespaldoEstado struct {
	Email     string `gorm:"primaryKey"`
	Documento []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (RespaldoEstado) TableName() string { return "respaldo_estados" }

type respaldoSQL struct{ db *gorm.DB }

// NewRespaldoSQL returns a mirror backed by the local sqlite database.
func NewRespaldoSQL(db *gorm.DB) (Respaldo, error) {
	if err := db.AutoMigrate(&RespaldoEstado{}); err != nil {
		return nil, fmt.Errorf("respaldo: migrate: %w", err)
	}
	return &respaldoSQL{db: db}, nil
}

func (r *respaldoSQL) Guardar(email string, doc *model.Documento) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("respaldo: marshal: %w", err)
	}
	row := RespaldoEstado{Email: email, Documento: data, UpdatedAt: time.Now()}
	return r.db.Save(&row).Error
}

func (r *respaldoSQL) Cargar(email string) (*model.Documento, error) {
	var row RespaldoEstado
	if err := r.db.First(&row, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("respaldo: sin copia local para %s: %w", email, err)
	}
	var doc model.Documento
	if err := json.Unmarshal(row.Documento, &doc); err != nil {
		return nil, fmt.Errorf("respaldo: unmarshal: %w", err)
	}
	doc.Normalizar()
	return &doc, nil
}

// ── in-memory mirror (tests) ──────────────────────────────────────────────────

type RespaldoMemoria struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewRespaldoMemoria() *RespaldoMemoria {
	return &RespaldoMemoria{docs: make(map[string][]byte)}
}

func (r *RespaldoMemoria) Guardar(email string, doc *model.Documento) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[email] = data
	return nil
}

func (r *RespaldoMemoria) Cargar(email string) (*model.Documento, error) {
	r.mu.Lock()
	data, ok := r.docs[email]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("respaldo: sin copia local para %s", email)
	}
	var doc model.Documento
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.Normalizar()
	return &doc, nil
}
