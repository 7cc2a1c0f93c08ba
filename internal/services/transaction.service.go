package services

import (
	"context"

	"speedballhub/internal/database"
	"speedballhub/internal/logger"

	"gorm.io/gorm"
)

type transactionKey struct{}

// GetTransaction returns the gorm transaction carried by the context, if any.
// Repositories prefer it over the shared connection so multi-statement writes
// stay atomic.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a transaction, committing on nil and rolling back on
// error. The transaction is made available to repositories through the
// context.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	log := s.log.Function("Execute")

	err := s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, transactionKey{}, tx)
		return fn(txCtx)
	})
	if err != nil {
		return log.Err("transaction failed", err)
	}

	return nil
}
