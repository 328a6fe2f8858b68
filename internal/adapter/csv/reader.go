// Package csv adapts delimited-text account activity streams to and
// from the processor's domain model.
package csv

import (
	enccsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

var expectedHeader = []string{"type", "client", "tx", "amount"}

// Reader streams account activities from CSV input of the form
//
//	type,       client, tx, amount
//	deposit,    1,      1,  100.0
//	dispute,    1,      1
//
// Fields are whitespace-trimmed and dispute-family rows may omit the
// amount column. Rows that cannot be parsed surface as errors wrapping
// domain.ErrMalformedRecord so the processor can skip them; underlying
// read failures are fatal.
type Reader struct {
	csv  *enccsv.Reader
	line int
}

// NewReader creates a Reader and consumes the header row.
func NewReader(r io.Reader) (*Reader, error) {
	cr := enccsv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	if len(header) < len(expectedHeader) {
		return nil, fmt.Errorf("invalid csv header: %q", header)
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("invalid csv header column %d: got %q, want %q", i, header[i], want)
		}
	}

	return &Reader{csv: cr, line: 1}, nil
}

// Next returns the next activity. It returns io.EOF when the input is
// exhausted.
func (r *Reader) Next() (domain.AccountActivity, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		var parseErr *enccsv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("line %d: %v: %w", parseErr.Line, err, domain.ErrMalformedRecord)
		}

		return nil, fmt.Errorf("reading csv record: %w", err)
	}
	r.line++

	activity, err := parseRecord(record)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}

	return activity, nil
}

func parseRecord(record []string) (domain.AccountActivity, error) {
	if len(record) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d: %w", len(record), domain.ErrMalformedRecord)
	}

	kind := domain.ActivityKind(strings.TrimSpace(record[0]))

	client, err := parseClientID(record[1])
	if err != nil {
		return nil, err
	}

	tx, err := parseTransactionID(record[2])
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindDeposit, domain.KindWithdrawal:
		if len(record) < 4 {
			return nil, fmt.Errorf("%s row without amount: %w", kind, domain.ErrMalformedRecord)
		}

		amount, err := parseAmount(record[3])
		if err != nil {
			return nil, err
		}

		if kind == domain.KindDeposit {
			return domain.Deposit{TX: tx, Client: client, Amount: amount}, nil
		}

		return domain.Withdrawal{TX: tx, Client: client, Amount: amount}, nil

	case domain.KindDispute:
		return domain.Dispute{TX: tx, Client: client}, nil
	case domain.KindResolve:
		return domain.Resolve{TX: tx, Client: client}, nil
	case domain.KindChargeback:
		return domain.Chargeback{TX: tx, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown activity kind %q: %w", kind, domain.ErrMalformedRecord)
	}
}

func parseClientID(field string) (domain.ClientID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid client id %q: %w", field, domain.ErrMalformedRecord)
	}

	return domain.ClientID(v), nil
}

func parseTransactionID(field string) (domain.TransactionID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q: %w", field, domain.ErrMalformedRecord)
	}

	return domain.TransactionID(v), nil
}

func parseAmount(field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(field))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", field, domain.ErrMalformedRecord)
	}

	return amount, nil
}
