package inventory

import (
	"context"
	"iter"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// MaxListedMovements tope de filas que devuelve el listado JSON; el resto se marca como truncado.
const MaxListedMovements = 5000

// ParseMovementFilter valida los filtros del request y los convierte al filtro del repositorio.
// date_to incluye el día completo.
func ParseMovementFilter(in dto.MovementFilterRequest) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	if err := validation.Struct(in); err != nil {
		return f, err
	}
	if in.DateFrom != "" {
		from, err := time.ParseInLocation(dateLayout, in.DateFrom, time.Local)
		if err != nil {
			return f, validation.Field("date_from", "datetime")
		}
		f.From = &from
	}
	if in.DateTo != "" {
		to, err := time.ParseInLocation(dateLayout, in.DateTo, time.Local)
		if err != nil {
			return f, validation.Field("date_to", "datetime")
		}
		until := to.AddDate(0, 0, 1)
		f.Until = &until
	}
	if f.From != nil && f.Until != nil && !f.From.Before(*f.Until) {
		return f, validation.Field("date_from", "ltefield")
	}
	f.UserID = in.UserID
	f.ProductID = in.ProductID
	f.Type = in.Type
	return f, nil
}

// ListMovements recorre el historial filtrado, del más reciente al más antiguo.
// La secuencia es perezosa y finita; cada recorrido vuelve a consultar desde el inicio.
// Se detiene en el primer error, que se entrega como segundo valor.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) iter.Seq2[*entity.Movement, error] {
	pageSize := uc.cfg.PageSize
	return func(yield func(*entity.Movement, error) bool) {
		var cursor *repository.MovementCursor
		for {
			page, err := uc.movRepo.List(ctx, filter, cursor, pageSize)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, m := range page {
				if !yield(m, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
			last := page[len(page)-1]
			cursor = &repository.MovementCursor{OccurredAt: last.OccurredAt, ID: last.ID}
		}
	}
}

// ListMovementsFromRequest valida los filtros y materializa hasta MaxListedMovements filas.
func (uc *LedgerUseCase) ListMovementsFromRequest(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	filter, err := ParseMovementFilter(in)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{Items: []dto.MovementResponse{}}
	for m, err := range uc.ListMovements(ctx, filter) {
		if err != nil {
			return nil, err
		}
		if len(out.Items) == MaxListedMovements {
			out.Truncated = true
			break
		}
		out.Items = append(out.Items, ToMovementResponse(m))
	}
	out.Total = len(out.Items)
	return out, nil
}
