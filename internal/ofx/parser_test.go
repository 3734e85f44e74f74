package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>1200.00
<FITID>2024011501
<NAME>AIRBNB PAYMENTS
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-85.00
<FITID>2024012001
<NAME>SPARKLE CLEANING SERVICE
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-140.50
<FITID>2024012501
<NAME>CITY ELECTRIC UTILITY
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>HOME DEPOT #4422
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseBankStatement(t *testing.T) {
	parser := NewParser()
	txns, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	income := txns[0]
	assert.Equal(t, model.TransactionIncome, income.Type)
	assert.Equal(t, "Booking Revenue", income.Category)
	assert.Equal(t, "AIRBNB PAYMENTS", income.Description)
	assert.InDelta(t, 1200.0, income.Amount, 0.001)
	assert.Equal(t, time.January, income.Date.Month())
	assert.NotEmpty(t, income.ID)

	cleaning := txns[1]
	assert.Equal(t, model.TransactionExpense, cleaning.Type)
	assert.Equal(t, "Cleaning", cleaning.Category)
	assert.InDelta(t, 85.0, cleaning.Amount, 0.001)

	utility := txns[2]
	assert.Equal(t, "Utilities", utility.Category)
	assert.InDelta(t, 140.50, utility.Amount, 0.001)
}

func TestParseCreditCardStatement(t *testing.T) {
	parser := NewParser()
	txns, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, model.TransactionExpense, txns[0].Type)
	assert.Equal(t, "Maintenance", txns[0].Category)
	assert.Equal(t, "Other Expense", txns[1].Category)
}

func TestParseInvalidFile(t *testing.T) {
	parser := NewParser()
	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		description string
		txnType     model.TransactionType
		want        string
	}{
		{"AIRBNB PAYMENTS", model.TransactionIncome, "Booking Revenue"},
		{"VRBO PAYOUT", model.TransactionIncome, "Booking Revenue"},
		{"WIRE TRANSFER", model.TransactionIncome, "Other Income"},
		{"CITY WATER DEPT", model.TransactionExpense, "Utilities"},
		{"SPARKLE CLEANING", model.TransactionExpense, "Cleaning"},
		{"STATE FARM INSURANCE", model.TransactionExpense, "Insurance"},
		{"WELLS FARGO MORTGAGE", model.TransactionExpense, "Mortgage"},
		{"HOME DEPOT #4422", model.TransactionExpense, "Maintenance"},
		{"RANDOM STORE", model.TransactionExpense, "Other Expense"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCategory(tt.txnType, tt.description))
		})
	}
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	t.Run("normalizes severity case", func(t *testing.T) {
		in := "<SEVERITY>Info</SEVERITY>"
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", parser.preprocessOFX(in))
	})

	t.Run("closes unterminated tags", func(t *testing.T) {
		in := "<OFX"
		assert.Equal(t, "<OFX>", parser.preprocessOFX(in))
	})

	t.Run("trims leading whitespace", func(t *testing.T) {
		in := "\n\n  OFXHEADER:100"
		assert.Equal(t, "OFXHEADER:100", parser.preprocessOFX(in))
	})
}
