package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/idempotency"
)

// HeaderIdempotencyKey header que el cliente envía para reintentos seguros.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// RequestObserver recibe la duración de cada request (métricas).
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra cada request con zerolog y lo reporta al observer.
// La etiqueta de ruta es el patrón registrado, no el path concreto.
func RequestLogger(observer RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if observer != nil {
			observer.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(err)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Int64("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

// IdempotencyStore persistencia de llaves de idempotencia.
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (*idempotency.Record, error)
	Complete(ctx context.Context, scope, key string, rec idempotency.Record) error
	Release(ctx context.Context, scope, key string) error
}

// Idempotency repite la respuesta guardada cuando llega otra vez la misma
// Idempotency-Key del mismo usuario en la misma ruta. Sin header o sin store
// el request pasa directo. Si Redis falla se atiende igual (fail-open).
func Idempotency(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if store == nil || key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga"})
		}
		scope := strconv.FormatInt(GetUserID(c), 10) + ":" + c.Method() + ":" + c.Route().Path
		ctx := c.UserContext()

		rec, err := store.Reserve(ctx, scope, key)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REQUEST_IN_PROGRESS", Message: "hay un request en curso con la misma Idempotency-Key"})
		case err != nil:
			log.Warn().Err(err).Str("scope", scope).Msg("idempotency: store no disponible, se atiende sin llave")
			return c.Next()
		case rec != nil:
			c.Set(HeaderReplayed, "true")
			if rec.ContentType != "" {
				c.Set(fiber.HeaderContentType, rec.ContentType)
			}
			return c.Status(rec.Status).Send(rec.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, scope, key)
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			if err := store.Release(ctx, scope, key); err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("idempotency: liberar llave")
			}
			return nil
		}
		// El buffer de fasthttp se reutiliza entre requests: se copia el cuerpo.
		body := append([]byte(nil), c.Response().Body()...)
		done := idempotency.Record{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        body,
		}
		if err := store.Complete(ctx, scope, key, done); err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("idempotency: guardar respuesta")
		}
		return nil
	}
}
