package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid month",
			input: "2024-03",
			want:  "2024-03",
		},
		{
			name:  "december",
			input: "2023-12",
			want:  "2023-12",
		},
		{
			name:    "missing month part",
			input:   "2024",
			wantErr: true,
		},
		{
			name:    "full date rejected",
			input:   "2024-03-01",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2024-13",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShiftMonth(t *testing.T) {
	assert.Equal(t, "2024-02", ShiftMonth("2024-01", 1))
	assert.Equal(t, "2023-12", ShiftMonth("2024-01", -1))
	assert.Equal(t, "2025-01", ShiftMonth("2024-01", 12))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "March 2024", MonthLabel("2024-03"))
	assert.Equal(t, "garbage", MonthLabel("garbage"))
}

func TestTransactionInput_Validate(t *testing.T) {
	valid := TransactionInput{
		Description: "Coffee",
		Amount:      4.5,
		Category:    "Food",
		Date:        "2024-03-01",
		Type:        "expense",
	}

	tests := []struct {
		mutate  func(*TransactionInput)
		name    string
		wantErr bool
	}{
		{
			name:   "valid expense",
			mutate: func(*TransactionInput) {},
		},
		{
			name:   "valid income",
			mutate: func(in *TransactionInput) { in.Type = "income" },
		},
		{
			name:   "zero amount allowed",
			mutate: func(in *TransactionInput) { in.Amount = 0 },
		},
		{
			name:    "negative amount",
			mutate:  func(in *TransactionInput) { in.Amount = -1 },
			wantErr: true,
		},
		{
			name:    "empty description",
			mutate:  func(in *TransactionInput) { in.Description = "" },
			wantErr: true,
		},
		{
			name:    "empty category",
			mutate:  func(in *TransactionInput) { in.Category = "" },
			wantErr: true,
		},
		{
			name:    "bad date format",
			mutate:  func(in *TransactionInput) { in.Date = "03/01/2024" },
			wantErr: true,
		},
		{
			name:    "unknown type",
			mutate:  func(in *TransactionInput) { in.Type = "transfer" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_IsIncome(t *testing.T) {
	assert.True(t, Transaction{Type: TypeIncome}.IsIncome())
	assert.False(t, Transaction{Type: TypeExpense}.IsIncome())
}

func TestTransaction_DisplayDate(t *testing.T) {
	txn := Transaction{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Mar 1, 2024", txn.DisplayDate())
}

func TestUser_PreferredCurrency(t *testing.T) {
	assert.Equal(t, "USD", User{}.PreferredCurrency())
	assert.Equal(t, "EUR", User{Currency: "EUR"}.PreferredCurrency())
}
