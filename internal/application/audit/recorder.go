// Package audit registra y consulta la bitácora de acciones de usuario.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// recordTimeout tiempo máximo de escritura de una entrada.
const recordTimeout = 3 * time.Second

// FailureCounter cuenta escrituras de bitácora fallidas.
type FailureCounter interface {
	AuditFailed()
}

// Recorder escribe entradas de bitácora sin propagar errores al caller.
type Recorder struct {
	repo     repository.AuditRepository
	failures FailureCounter
}

// NewRecorder construye el recorder. failures puede ser nil.
func NewRecorder(repo repository.AuditRepository, failures FailureCounter) *Recorder {
	return &Recorder{repo: repo, failures: failures}
}

// Record agrega una entrada. Sin usuario (userID == 0) no hace nada.
// Se ejecuta con un contexto desligado de la cancelación del request.
func (r *Recorder) Record(ctx context.Context, userID int64, action, description string) {
	if userID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	entry := &entity.AuditEntry{
		UserID:      userID,
		Action:      action,
		Description: description,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Int64("user_id", userID).
			Str("action", action).
			Msg("no se pudo registrar la bitácora")
		if r.failures != nil {
			r.failures.AuditFailed()
		}
	}
}
