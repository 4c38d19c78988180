// Command importer bulk-ingests spending descriptions through the same
// extraction and persistence path the API uses. It reads either a text file
// with one description per line, or a list of local audio files with -audio.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/config"
	"github.com/gestor-financeiro/internal/data/postgres"
	"github.com/gestor-financeiro/internal/extraction"
	"github.com/gestor-financeiro/internal/logger"
	"github.com/gestor-financeiro/internal/platform/persistence"
	"github.com/gestor-financeiro/internal/transcription"
)

func main() {
	workers := flag.Int("workers", 4, "number of concurrent ingestion workers")
	audio := flag.Bool("audio", false, "treat arguments as audio files instead of a text file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: importer [-workers N] [-audio] <file> [file...]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig("importer")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	ctx := context.Background()

	postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	spendingRepo := postgres.NewSpendingRepository(log, postgresDB)
	llmClient := extraction.NewClient(log, &cfg.LLM)
	whisperClient := transcription.NewClient(log, &cfg.Whisper)

	// The importer skips the audit trail and event stream; it writes records only
	processingService := service.NewProcessingService(log, llmClient, whisperClient, spendingRepo, nil, nil)

	pool, err := ants.NewPool(*workers)
	if err != nil {
		log.Error("Failed to create worker pool", "error", err)
		os.Exit(1)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var created, failed atomic.Int64

	submit := func(task func()) {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			failed.Add(1)
			log.Error("Failed to submit ingestion task", "error", err)
		}
	}

	if *audio {
		for _, path := range flag.Args() {
			path := path
			submit(func() {
				ingestAudio(ctx, log, whisperClient, processingService, path, &created, &failed)
			})
		}
	} else {
		for _, path := range flag.Args() {
			if err := submitLines(path, submit, ctx, log, processingService, &created, &failed); err != nil {
				log.Error("Failed to read input file", "path", path, "error", err)
				os.Exit(1)
			}
		}
	}

	wg.Wait()

	log.Info("Ingestion finished", "created", created.Load(), "failed", failed.Load())
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

// submitLines schedules one ingestion task per non-empty line of the file
func submitLines(path string, submit func(func()), ctx context.Context, log *slog.Logger, svc service.ProcessingService, created, failed *atomic.Int64) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		submit(func() {
			ingestText(ctx, log, svc, line, created, failed)
		})
	}
	return scanner.Err()
}

func ingestText(ctx context.Context, log *slog.Logger, svc service.ProcessingService, texto string, created, failed *atomic.Int64) {
	outcome := svc.ProcessText(ctx, texto)
	if !outcome.Sucesso {
		failed.Add(1)
		log.Warn("Description not ingested", "texto", texto, "erro", outcome.Erro)
		return
	}
	created.Add(1)
	log.Info("Record created", "gasto_id", outcome.Gasto.ID, "item", outcome.Gasto.Item, "valor", outcome.Gasto.Valor)
}

// ingestAudio transcribes a local audio file and runs the text through the
// ingestion pipeline
func ingestAudio(ctx context.Context, log *slog.Logger, whisper *transcription.Client, svc service.ProcessingService, path string, created, failed *atomic.Int64) {
	texto, err := whisper.TranscribeFile(ctx, path)
	if err != nil {
		failed.Add(1)
		log.Error("Transcription failed", "path", path, "error", err)
		return
	}
	if strings.TrimSpace(texto) == "" {
		failed.Add(1)
		log.Warn("Audio transcribed to empty text", "path", path)
		return
	}
	ingestText(ctx, log, svc, texto, created, failed)
}
