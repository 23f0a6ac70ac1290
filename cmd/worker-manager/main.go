// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pathmatch-workers/internal/common/auth"
	"pathmatch-workers/internal/common/aws"
	"pathmatch-workers/internal/common/config"
	"pathmatch-workers/internal/common/database"
	"pathmatch-workers/internal/common/directory"
	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/common/observability"

	// Matching Workers (3)
	cc "pathmatch-workers/internal/workers/matching/calculate-compatibility"
	epk "pathmatch-workers/internal/workers/matching/extract-profile-keywords"
	ftm "pathmatch-workers/internal/workers/matching/find-top-matches"

	// Profile Workers (3)
	sme "pathmatch-workers/internal/workers/profile/save-mentee-profile"
	smp "pathmatch-workers/internal/workers/profile/save-mentor-profile"
	ua "pathmatch-workers/internal/workers/profile/update-availability"

	// Match Lifecycle Workers (2)
	cmr "pathmatch-workers/internal/workers/match/create-match-record"
	ums "pathmatch-workers/internal/workers/match/update-match-status"

	// Account & Session Workers (4)
	lu "pathmatch-workers/internal/workers/auth/login-user"
	lo "pathmatch-workers/internal/workers/auth/logout-user"
	rs "pathmatch-workers/internal/workers/auth/refresh-session"
	ru "pathmatch-workers/internal/workers/auth/register-user"

	// Communication Workers (1)
	smn "pathmatch-workers/internal/workers/communication/send-match-notification"

	// Data Access Workers (3)
	ims "pathmatch-workers/internal/workers/data-access/index-mentor-search"
	qp "pathmatch-workers/internal/workers/data-access/query-postgresql"
	sm "pathmatch-workers/internal/workers/data-access/search-mentors"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Shared Services ---
	sessions := auth.NewSessionStore(
		redis.Client,
		time.Duration(cfg.Auth.AccessTokenTTL)*time.Second,
		time.Duration(cfg.Auth.RefreshTokenTTL)*time.Second,
	)

	// Without a directory base URL the register-user worker skips NetID
	// verification instead of failing every registration.
	var directorySvc ru.DirectoryService
	if cfg.Directory.BaseURL != "" {
		directorySvc = directory.NewClient(cfg.Directory)
	} else {
		zapLog.Warn("directory base URL not configured, NetID verification disabled")
	}

	var emailSender smn.EmailSender
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		emailSender = sesClient
	}

	var smsSender smn.SMSSender
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		smsSender = snsClient
	}

	zapLog.Info("All shared service clients initialized")

	// --- START: Register ALL 16 Workers ---

	// --- 1. Matching Workers (3) ---
	if cfg.Workers[epk.TaskType].Enabled {
		handler := epk.NewHandler(
			&epk.Config{
				Timeout:   time.Duration(cfg.Workers[epk.TaskType].Timeout) * time.Millisecond,
				Thesaurus: cfg.Matching.Thesaurus,
			},
			log,
		)
		startWorker(zeebeClient, epk.TaskType, cfg.Workers[epk.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cc.TaskType].Enabled {
		handler := cc.NewHandler(
			&cc.Config{
				CacheTTL:           time.Duration(cfg.Matching.CacheTTL) * time.Second,
				Timeout:            time.Duration(cfg.Workers[cc.TaskType].Timeout) * time.Millisecond,
				SemanticMultiplier: cfg.Matching.SemanticMultiplier,
				Thesaurus:          cfg.Matching.Thesaurus,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, cc.TaskType, cfg.Workers[cc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ftm.TaskType].Enabled {
		handler := ftm.NewHandler(
			&ftm.Config{
				CacheTTL:           time.Duration(cfg.Matching.CacheTTL) * time.Second,
				Timeout:            time.Duration(cfg.Workers[ftm.TaskType].Timeout) * time.Millisecond,
				DefaultLimit:       cfg.Matching.DefaultLimit,
				SemanticMultiplier: cfg.Matching.SemanticMultiplier,
				Thesaurus:          cfg.Matching.Thesaurus,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, ftm.TaskType, cfg.Workers[ftm.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Profile Workers (3) ---
	if cfg.Workers[smp.TaskType].Enabled {
		handler := smp.NewHandler(
			&smp.Config{
				Timeout: time.Duration(cfg.Workers[smp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, smp.TaskType, cfg.Workers[smp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sme.TaskType].Enabled {
		handler := sme.NewHandler(
			&sme.Config{
				Timeout: time.Duration(cfg.Workers[sme.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, sme.TaskType, cfg.Workers[sme.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ua.TaskType].Enabled {
		handler := ua.NewHandler(
			&ua.Config{
				Timeout: time.Duration(cfg.Workers[ua.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, ua.TaskType, cfg.Workers[ua.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Match Lifecycle Workers (2) ---
	if cfg.Workers[cmr.TaskType].Enabled {
		handler := cmr.NewHandler(
			&cmr.Config{
				Timeout: time.Duration(cfg.Workers[cmr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, cmr.TaskType, cfg.Workers[cmr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ums.TaskType].Enabled {
		handler := ums.NewHandler(
			&ums.Config{
				Timeout: time.Duration(cfg.Workers[ums.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, ums.TaskType, cfg.Workers[ums.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Account & Session Workers (4) ---
	if cfg.Workers[ru.TaskType].Enabled {
		handler := ru.NewHandler(
			&ru.Config{
				BcryptCost: cfg.Auth.BcryptCost,
				Timeout:    time.Duration(cfg.Workers[ru.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, directorySvc, log,
		)
		startWorker(zeebeClient, ru.TaskType, cfg.Workers[ru.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[lu.TaskType].Enabled {
		handler := lu.NewHandler(
			&lu.Config{
				Timeout: time.Duration(cfg.Workers[lu.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, sessions, log,
		)
		startWorker(zeebeClient, lu.TaskType, cfg.Workers[lu.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rs.TaskType].Enabled {
		handler := rs.NewHandler(
			&rs.Config{
				Timeout: time.Duration(cfg.Workers[rs.TaskType].Timeout) * time.Millisecond,
			},
			sessions, log,
		)
		startWorker(zeebeClient, rs.TaskType, cfg.Workers[rs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[lo.TaskType].Enabled {
		handler := lo.NewHandler(
			&lo.Config{
				Timeout: time.Duration(cfg.Workers[lo.TaskType].Timeout) * time.Millisecond,
			},
			sessions, log,
		)
		startWorker(zeebeClient, lo.TaskType, cfg.Workers[lo.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Communication Workers (1) ---
	if cfg.Workers[smn.TaskType].Enabled {
		handler := smn.NewHandler(
			&smn.Config{
				EmailEnabled:      cfg.Notifications.Email.Enabled,
				FromEmail:         cfg.Notifications.Email.FromEmail,
				SMSEnabled:        cfg.Notifications.SMS.Enabled,
				SMSScoreThreshold: cfg.Notifications.SMS.ScoreThreshold,
				Timeout:           time.Duration(cfg.Workers[smn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, emailSender, smsSender, log,
		)
		startWorker(zeebeClient, smn.TaskType, cfg.Workers[smn.TaskType], handler.Handle, zapLog)
	}

	// --- 6. Data Access Workers (3) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ims.TaskType].Enabled {
		handler := ims.NewHandler(
			&ims.Config{
				Index:     cfg.Search.MentorIndex,
				Timeout:   time.Duration(cfg.Workers[ims.TaskType].Timeout) * time.Millisecond,
				Thesaurus: cfg.Matching.Thesaurus,
			},
			pg.DB, esClient.Client, log,
		)
		startWorker(zeebeClient, ims.TaskType, cfg.Workers[ims.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sm.TaskType].Enabled {
		handler := sm.NewHandler(
			&sm.Config{
				Index:       cfg.Search.MentorIndex,
				DefaultSize: cfg.Matching.DefaultLimit,
				Timeout:     time.Duration(cfg.Workers[sm.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, sm.TaskType, cfg.Workers[sm.TaskType], handler.Handle, zapLog)
	}
	zapLog.Info("All 16 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
