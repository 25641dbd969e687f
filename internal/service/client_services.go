package service

import (
	"github.com/expenseai/go-expense-sync/internal/adapter"
	"github.com/expenseai/go-expense-sync/internal/auth"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/store"
)

type ClientServices struct {
	LedgerService ClientLedgerService
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, tokens auth.TokenProvider, log *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages, serverAdapter, tokens, log)

	return &ClientServices{
		LedgerService: NewClientLedgerService(storages, log),
		SyncService:   syncSvc,
		SyncJob:       NewClientSyncJob(syncSvc),
	}
}
