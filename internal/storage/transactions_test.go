package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/service"
)

func serviceFilterAll() service.TransactionFilter {
	return service.TransactionFilter{}
}

func TestSQLiteStorage_CreateTransaction_Validation(t *testing.T) {
	store := createTestStorage(t)
	p := createTestProperty(t, store, "host-1", "Downtown Loft")

	tests := []struct {
		name    string
		mutate  func(*model.Transaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.Transaction) {}},
		{
			name:    "negative amount",
			mutate:  func(txn *model.Transaction) { txn.Amount = -10 },
			wantErr: true,
		},
		{
			name:    "unknown type",
			mutate:  func(txn *model.Transaction) { txn.Type = "transfer" },
			wantErr: true,
		},
		{
			name:    "zero date",
			mutate:  func(txn *model.Transaction) { txn.Date = time.Time{} },
			wantErr: true,
		},
		{
			name:    "missing category",
			mutate:  func(txn *model.Transaction) { txn.Category = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := makeTestTransaction("host-1", p.ID, model.TransactionIncome, 100, testDate(2024, time.January, 15))
			tt.mutate(&txn)
			err := store.CreateTransaction(context.Background(), &txn)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateTransaction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_ListTransactions_Filters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	loft := createTestProperty(t, store, "host-1", "Downtown Loft")
	cabin := createTestProperty(t, store, "host-1", "Lake Cabin")

	txns := []model.Transaction{
		makeTestTransaction("host-1", loft.ID, model.TransactionIncome, 1200, testDate(2024, time.January, 15)),
		makeTestTransaction("host-1", loft.ID, model.TransactionExpense, 80, testDate(2024, time.January, 16)),
		makeTestTransaction("host-1", cabin.ID, model.TransactionIncome, 900, testDate(2024, time.February, 2)),
	}
	if err := store.CreateTransactions(ctx, txns); err != nil {
		t.Fatalf("CreateTransactions failed: %v", err)
	}

	from := testDate(2024, time.January, 1)
	to := testDate(2024, time.January, 31)

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   int
	}{
		{name: "no filter", filter: service.TransactionFilter{}, want: 3},
		{name: "january only", filter: service.TransactionFilter{StartDate: &from, EndDate: &to}, want: 2},
		{name: "by property", filter: service.TransactionFilter{PropertyID: cabin.ID}, want: 1},
		{name: "income only", filter: service.TransactionFilter{Type: model.TransactionIncome}, want: 2},
		{
			name:   "property and type",
			filter: service.TransactionFilter{PropertyID: loft.ID, Type: model.TransactionExpense},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListTransactions(ctx, "host-1", tt.filter)
			if err != nil {
				t.Fatalf("ListTransactions failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Expected %d transactions, got %d", tt.want, len(got))
			}
		})
	}

	// Owner scope: nothing for another owner
	got, err := store.ListTransactions(ctx, "host-2", service.TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Cross-owner list should be empty, got %d rows", len(got))
	}
}

func TestSQLiteStorage_UpdateTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := createTestProperty(t, store, "host-1", "Downtown Loft")
	txn := makeTestTransaction("host-1", p.ID, model.TransactionExpense, 80, testDate(2024, time.January, 16))
	if err := store.CreateTransaction(ctx, &txn); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	txn.Amount = 95
	txn.Category = "Repairs"
	if err := store.UpdateTransaction(ctx, &txn); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}

	got, err := store.GetTransactionByID(ctx, txn.ID, "host-1")
	if err != nil {
		t.Fatalf("GetTransactionByID failed: %v", err)
	}
	if got.Amount != 95 || got.Category != "Repairs" {
		t.Errorf("Update not persisted: %+v", got)
	}

	// Cross-owner update is a not-found
	txn.OwnerID = "host-2"
	if err := store.UpdateTransaction(ctx, &txn); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Cross-owner update should be ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_GetTransactionDateBounds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if _, _, err := store.GetTransactionDateBounds(ctx, "host-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Empty store should yield ErrNotFound, got %v", err)
	}

	p := createTestProperty(t, store, "host-1", "Downtown Loft")
	txns := []model.Transaction{
		makeTestTransaction("host-1", p.ID, model.TransactionIncome, 100, testDate(2024, time.March, 10)),
		makeTestTransaction("host-1", p.ID, model.TransactionIncome, 100, testDate(2024, time.January, 5)),
		makeTestTransaction("host-1", p.ID, model.TransactionExpense, 50, testDate(2024, time.June, 30)),
	}
	if err := store.CreateTransactions(ctx, txns); err != nil {
		t.Fatalf("CreateTransactions failed: %v", err)
	}

	earliest, latest, err := store.GetTransactionDateBounds(ctx, "host-1")
	if err != nil {
		t.Fatalf("GetTransactionDateBounds failed: %v", err)
	}
	if !earliest.Equal(testDate(2024, time.January, 5)) {
		t.Errorf("Wrong earliest date: %v", earliest)
	}
	if !latest.Equal(testDate(2024, time.June, 30)) {
		t.Errorf("Wrong latest date: %v", latest)
	}
}

func TestSQLiteStorage_CreateTransactions_EmptySlice(t *testing.T) {
	store := createTestStorage(t)

	if err := store.CreateTransactions(context.Background(), []model.Transaction{}); err == nil {
		t.Error("Expected error for empty slice")
	}
}
