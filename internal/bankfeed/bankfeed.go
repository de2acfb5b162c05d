package bankfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tespinoza/cuentaclara/internal/config"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var pollingAccounts sync.Map

// Response is the bank balance API payload for a single reference.
type Response struct {
	Ref   string `json:"ref"`
	Total int64  `json:"total"`
}

type AccountRepo interface {
	FindWithBankRef(ctx context.Context) ([]domain.Account, error)
}

type SnapshotRepo interface {
	Upsert(ctx context.Context, accountID int, total int64) error
}

type Service struct {
	url            string
	accountRepo    AccountRepo
	snapshots      SnapshotRepo
	client         clients.HTTPClientI
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, accountRepo AccountRepo, snapshots SnapshotRepo, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.BankAddress,
		accountRepo:    accountRepo,
		snapshots:      snapshots,
		client:         client,
		workerPool:     NewWorkerPool(10),
		updateInterval: cfg.BankInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Bank feed service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping bank feed")
			return
		case <-ticker.C:
			s.pollAccounts(ctx)
		}
	}
}

func (s *Service) pollAccounts(ctx context.Context) {
	accounts, err := s.accountRepo.FindWithBankRef(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch accounts with bank references", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, account := range accounts {
		account := account

		if _, loaded := pollingAccounts.LoadOrStore(account.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer pollingAccounts.Delete(account.ID)
				return s.handleAccount(ctx, account)
			})
			if err != nil {
				pollingAccounts.Delete(account.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error polling bank balances", zap.Error(err))
	}
}

func (s *Service) handleAccount(ctx context.Context, account domain.Account) error {
	url := s.url + "/api/balances/" + account.BankRef
	var err error
	var statusCode int
	var respBody []byte
	var respHeaders http.Header

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = s.client.Get(url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to poll reference %s after %d retries: %w", account.BankRef, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				return s.handleRateLimit(account, respHeaders, attempt)
			case http.StatusNoContent:
				zap.L().Warn("Reference not known to the bank yet, retrying", zap.String("bankRef", account.BankRef), zap.Int("attempt", attempt))
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("reference %s not known to the bank after %d retries", account.BankRef, maxRetries)

			case http.StatusOK:
				return s.processBalance(ctx, account, respBody)

			default:
				zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("bankRef", account.BankRef))
				return errors.New("unexpected status code")
			}
		}
	}
	return nil
}

func (s *Service) processBalance(ctx context.Context, account domain.Account, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}

	if response.Ref != account.BankRef {
		return fmt.Errorf("reference mismatch: expected %s, got %s", account.BankRef, response.Ref)
	}

	if err := s.snapshots.Upsert(ctx, account.ID, response.Total); err != nil {
		return fmt.Errorf("failed to store snapshot for account %d: %w", account.ID, err)
	}

	zap.L().Info("Bank snapshot stored", zap.Int("accountID", account.ID), zap.Int64("total", response.Total))
	return nil
}

func (s *Service) handleRateLimit(account domain.Account, respHeaders http.Header, attempt int) error {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.String("bankRef", account.BankRef),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
	return nil
}
