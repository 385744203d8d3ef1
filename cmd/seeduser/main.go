// seeduser crea el primer administrador del panel.
//
// Uso: go run ./cmd/seeduser <nombre> <email> <password>
// Lee la conexión a PostgreSQL de la misma configuración que la API (.env / variables de entorno).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "uso: seeduser <nombre> <email> <password>")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seeduser"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	out, err := users.Create(ctx, dto.CreateUserRequest{
		Name:     os.Args[1],
		Email:    os.Args[2],
		Password: os.Args[3],
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Warn().Str("email", os.Args[2]).Msg("el usuario ya existe, nada que hacer")
		return
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Int64("user_id", out.ID).Str("email", out.Email).Msg("administrador creado")
}
