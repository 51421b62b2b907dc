// Package model holds the domain types shared across financeflow: expenses,
// incomes, categories, budgets and the budget optimization request/result.
package model
