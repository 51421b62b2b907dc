package api

import (
	"fmt"
	"time"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
)

type ExpenseDTO struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	CategoryID  string  `json:"categoryId"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type IncomeDTO struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Source      string  `json:"source"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type CategoryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

type BudgetDTO struct {
	ID         string  `json:"id"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"categoryId"`
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate"`
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", common.ErrInvalidInput, field, s)
	}
	return t, nil
}

func ExpenseToDTO(e model.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          e.ID,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Date:        e.Date.Format(model.DateLayout),
		Description: e.Description,
	}
}

func DTOToExpense(dto ExpenseDTO) (model.Expense, error) {
	date, err := parseDate("date", dto.Date)
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		ID:          dto.ID,
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
		Date:        date,
		Description: dto.Description,
	}, nil
}

func IncomeToDTO(i model.Income) IncomeDTO {
	return IncomeDTO{
		ID:          i.ID,
		Amount:      i.Amount,
		Source:      i.Source,
		Date:        i.Date.Format(model.DateLayout),
		Description: i.Description,
	}
}

func DTOToIncome(dto IncomeDTO) (model.Income, error) {
	date, err := parseDate("date", dto.Date)
	if err != nil {
		return model.Income{}, err
	}
	return model.Income{
		ID:          dto.ID,
		Amount:      dto.Amount,
		Source:      dto.Source,
		Date:        date,
		Description: dto.Description,
	}, nil
}

func CategoryToDTO(c model.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func BudgetToDTO(b model.Budget) BudgetDTO {
	return BudgetDTO{
		ID:         b.ID,
		Amount:     b.Amount,
		CategoryID: b.CategoryID,
		Period:     string(b.Period),
		StartDate:  b.StartDate.Format(model.DateLayout),
	}
}

func DTOToBudget(dto BudgetDTO) (model.Budget, error) {
	period, err := model.ParseBudgetPeriod(dto.Period)
	if err != nil {
		return model.Budget{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	start, err := parseDate("startDate", dto.StartDate)
	if err != nil {
		return model.Budget{}, err
	}
	return model.Budget{
		ID:         dto.ID,
		Amount:     dto.Amount,
		CategoryID: dto.CategoryID,
		Period:     period,
		StartDate:  start,
	}, nil
}
