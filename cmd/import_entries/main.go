// import_entries carga un lote de entregas desde CSV en una sola transacción.
//
// Uso: go run ./cmd/import_entries [--latin1] [--delimiter ';'] entregas.csv
// Columnas: account_no,entry_date,session,quantity,fat,snf,amount
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/events"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/storage"
	"github.com/jhoicas/Lecheria-api/pkg/config"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

func main() {
	latin1 := pflag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	delimiter := pflag.String("delimiter", ",", "separador de columnas")
	dryRun := pflag.Bool("dry-run", false, "solo valida el archivo, no guarda")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_entries [--latin1] [--delimiter ';'] [--dry-run] archivo.csv")
		os.Exit(2)
	}
	sep, size := utf8.DecodeRuneInString(*delimiter)
	if size == 0 || size != len(*delimiter) {
		fmt.Fprintf(os.Stderr, "delimitador inválido: %q\n", *delimiter)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(pflag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	reqs, err := csvimport.Read(f, csvimport.Options{Latin1: *latin1, Delimiter: sep})
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("filas", len(reqs)).Str("archivo", pflag.Arg(0)).Msg("CSV leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer stores.Close()

	var publisher collection.EventPublisher = events.Noop{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	uc := collection.NewEntryUseCase(stores.Members, stores.Entries, stores.TxRunner, publisher, log.Component("import"))
	n, err := uc.Import(ctx, reqs)
	if err != nil {
		log.Fatal().Err(err).Msg("importar entregas")
	}
	log.Info().Int("guardadas", n).Msg("importación completa")
}
