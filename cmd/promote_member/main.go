// promote_member cambia el rol de una cuenta ya registrada.
//
// Uso: go run ./cmd/promote_member [--role collector] ACC-1001
// Roles: member, collector, admin. Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, ...).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Lecheria-api/internal/application/auth"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/storage"
	"github.com/jhoicas/Lecheria-api/pkg/config"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

func main() {
	role := pflag.String("role", "collector", "rol a asignar: member | collector | admin")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: promote_member [--role collector] ACCOUNT_NO")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// En memoria el cambio moriría con este proceso; la API usa ADMIN_ACCOUNT_NO en ese caso.
	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal().Msg("promote_member requiere un almacén persistente (DB_DRIVER=memory no aplica)")
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer stores.Close()

	uc := auth.NewAuthUseCase(stores.Members, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	member, err := uc.SetRole(ctx, pflag.Arg(0), *role)
	if err != nil {
		log.Fatal().Err(err).Str("account_no", pflag.Arg(0)).Msg("cambiar rol")
	}
	log.Info().Str("account_no", member.AccountNo).Str("role", member.Role).Msg("rol actualizado")
}
