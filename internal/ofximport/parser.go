// Package ofximport parses OFX/QFX bank exports into expense drafts ready to
// be posted to the backend. Only debits become drafts; credits are deposits,
// not expenses.
package ofximport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/spentcli/spent/internal/model"
)

// Draft is a not-yet-created expense parsed from a bank file. FitID is the
// bank's transaction identifier, used to skip duplicates within an import run.
type Draft struct {
	FitID    string
	Category string
	Notes    string
	Date     model.Date
	Amount   float64
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing angle bracket on a tag
	// that ends its line.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns expense drafts for its debits.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Draft, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var drafts []Draft
	var bankStmts, ccStmts, credits int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			d, skipped := p.processStatement(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
			drafts = append(drafts, d...)
			credits += skipped
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			d, skipped := p.processStatement(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
			drafts = append(drafts, d...)
			credits += skipped
		}
	}

	slog.Info("Parsed OFX file",
		"drafts", len(drafts),
		"credits_skipped", credits,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return drafts, nil
}

// processStatement converts one statement's debits to drafts, returning the
// drafts and the count of skipped credits.
func (p *Parser) processStatement(list *ofxgo.TransactionList, accountID string) ([]Draft, int) {
	if list == nil {
		return nil, 0
	}

	var drafts []Draft
	var credits int

	for _, ofxTx := range list.Transactions {
		amount, _ := ofxTx.TrnAmt.Float64()
		// OFX uses negative amounts for debits.
		if amount >= 0 {
			credits++
			continue
		}

		posted := ofxTx.DtPosted.Time
		drafts = append(drafts, Draft{
			FitID:    fmt.Sprintf("%s_%s", accountID, ofxTx.FiTID),
			Amount:   -amount,
			Category: model.DefaultCategory,
			Date:     model.NewDate(posted.Year(), posted.Month(), posted.Day()),
			Notes:    p.describe(ofxTx),
		})
	}

	return drafts, credits
}

// describe builds the notes field from the best description OFX offers.
func (p *Parser) describe(tx ofxgo.Transaction) string {
	desc := strings.TrimSpace(string(tx.Name))
	if tx.Payee != nil && tx.Payee.Name != "" {
		desc = strings.TrimSpace(string(tx.Payee.Name))
	}
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && memo != desc {
		if desc == "" {
			desc = memo
		} else {
			desc = desc + " / " + memo
		}
	}

	if len(desc) > model.MaxNotesLength {
		desc = desc[:model.MaxNotesLength]
	}
	return desc
}
