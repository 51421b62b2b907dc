// Package ofx imports expenses and incomes from OFX/QFX bank exports.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/Veraticus/financeflow/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is everything parsed out of one OFX file.
type Statement struct {
	Expenses []model.Expense
	Incomes  []model.Income
	Accounts []string
}

// Len is the number of parsed entries.
func (s *Statement) Len() int {
	return len(s.Expenses) + len(s.Incomes)
}

// Parser converts OFX transactions into expenses and incomes. Debits become
// expenses filed under the parser's category; credits become incomes.
type Parser struct {
	category string
}

// NewParser creates a parser that files expenses under categoryID. An empty
// categoryID files them under the catch-all category.
func NewParser(categoryID string) *Parser {
	if strings.TrimSpace(categoryID) == "" {
		categoryID = model.OtherCategoryID
	}
	return &Parser{category: categoryID}
}

// preprocessOFX fixes common formatting issues in bank exports.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	seen := make(map[string]bool)
	addAccount := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			stmt.Accounts = append(stmt.Accounts, id)
		}
	}

	for _, msg := range resp.Bank {
		bank, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		accountID := string(bank.BankAcctFrom.AcctID)
		addAccount(accountID)
		if bank.BankTranList != nil {
			p.addTransactions(stmt, bank.BankTranList.Transactions, accountID)
		}
	}

	for _, msg := range resp.CreditCard {
		cc, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		accountID := string(cc.CCAcctFrom.AcctID)
		addAccount(accountID)
		if cc.BankTranList != nil {
			p.addTransactions(stmt, cc.BankTranList.Transactions, accountID)
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(stmt.Expenses),
		"incomes", len(stmt.Incomes),
		"accounts", len(stmt.Accounts))

	return stmt, nil
}

func (p *Parser) addTransactions(stmt *Statement, txns []ofxgo.Transaction, accountID string) {
	for _, tx := range txns {
		amount, _ := tx.TrnAmt.Float64()
		if amount == 0 {
			slog.Debug("Skipping zero-amount transaction", "fitid", tx.FiTID)
			continue
		}

		date := calendarDay(tx.DtPosted.Time)
		description := extractMerchantName(tx)
		importID := accountID + ":" + string(tx.FiTID)

		// OFX reports debits as negative amounts.
		if amount < 0 {
			stmt.Expenses = append(stmt.Expenses, model.Expense{
				ID:          uuid.NewString(),
				Amount:      -amount,
				CategoryID:  p.category,
				Date:        date,
				Description: description,
				ImportID:    importID,
			})
			continue
		}

		stmt.Incomes = append(stmt.Incomes, model.Income{
			ID:          uuid.NewString(),
			Amount:      amount,
			Source:      incomeSource(tx, description),
			Date:        date,
			Description: string(tx.Memo),
			ImportID:    importID,
		})
	}
}

// calendarDay drops the time of day, keeping the date as posted.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func incomeSource(tx ofxgo.Transaction, description string) string {
	if tx.TrnType == ofxgo.TrnTypeInt {
		return "Interest"
	}
	if description == "" {
		return "Deposit"
	}
	return description
}

var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	upper := strings.ToUpper(name)
	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
