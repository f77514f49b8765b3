package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// CreateBankAccountRequest defines the data needed to register a cash/bank account.
type CreateBankAccountRequest struct {
	Name           string                 `json:"name" binding:"required"`
	AccountType    domain.BankAccountType `json:"accountType" binding:"required,oneof=CASH BANK"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to a DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		AccountType:    string(a.AccountType),
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ToBankAccountResponses converts a slice of domain.BankAccount to DTOs.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToBankAccountResponse(&a)
	}
	return res
}
