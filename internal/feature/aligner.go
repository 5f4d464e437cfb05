package feature

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"FraudScope/internal/domain/models"
	"FraudScope/pkg/util"
)

// categoricalFields are the one-hot encoded raw fields, with the defaults
// applied when a field is missing from the record.
var categoricalFields = []struct {
	name string
	def  string
}{
	{"category", "Other"},
	{"merchant", "Unknown"},
	{"location", "Unknown"},
	{"device", "Unknown"},
}

// Aligner converts one raw transaction record into the exact numeric row
// layout the models were trained on: same one-hot encoding, same
// missing-column defaults, same scaler normalization. Pure and safe for
// concurrent use; schema and scaler are read-only after construction.
type Aligner struct {
	schema *Schema
	scaler *Scaler
	now    func() time.Time
}

// NewAligner builds an aligner over a loaded schema and fitted scaler.
func NewAligner(schema *Schema, scaler *Scaler) *Aligner {
	return &Aligner{schema: schema, scaler: scaler, now: time.Now}
}

// Align maps a raw record to a feature vector whose columns are exactly the
// schema's columns, in order. Missing fields degrade to defaults; unknown
// categorical values are dropped. Only an unparseable timestamp fails.
func (a *Aligner) Align(record models.RawRecord) ([]float64, error) {
	amount := floatField(record, "amount", 0.0)
	chargebacks := floatField(record, "chargeback_history", 0)
	cardPresent := intField(record, "card_present", 0)
	cvvPresent := intField(record, "cvv_present", 0)

	ts, err := a.timestampField(record)
	if err != nil {
		return nil, err
	}

	transactionHour := float64(ts.Hour())
	transactionDay := float64(ts.Day())

	// Serve-time threshold is fixed at 500; training used the column median.
	isHighAmount := 0.0
	if amount > 500 {
		isHighAmount = 1.0
	}
	cardInfoMatch := 0.0
	if cardPresent != 0 && cvvPresent != 0 {
		cardInfoMatch = 1.0
	}

	row := make([]float64, a.schema.Len())
	set := func(name string, v float64) {
		if i, ok := a.schema.Index(name); ok {
			row[i] = v
		}
	}

	set("amount", amount)
	set("chargeback_history", chargebacks)
	set("transaction_hour", transactionHour)
	set("transaction_day", transactionDay)
	set("is_high_amount", isHighAmount)
	set("card_info_match", cardInfoMatch)
	set("card_present", float64(cardPresent))
	set("cvv_present", float64(cvvPresent))

	for _, f := range categoricalFields {
		value := stringField(record, f.name, f.def)
		set(f.name+"_"+value, 1.0)
	}

	a.scaler.Apply(a.schema, row)
	return row, nil
}

// timestampField parses the record's timestamp. A missing field defaults to
// the current time; a present but unparseable value is fatal for the request.
func (a *Aligner) timestampField(record models.RawRecord) (time.Time, error) {
	v, ok := record["timestamp"]
	if !ok || v == nil {
		return a.now(), nil
	}
	switch t := v.(type) {
	case string:
		if parsed, ok := util.ParseTime(t); ok {
			return parsed, nil
		}
		return time.Time{}, fmt.Errorf("parse timestamp %q: unsupported format", t)
	case float64:
		return time.Unix(int64(t), 0), nil
	default:
		return time.Time{}, fmt.Errorf("parse timestamp: unsupported type %T", v)
	}
}

// floatField coerces a record field to float64, falling back to def when the
// field is absent or malformed.
func floatField(record models.RawRecord, name string, def float64) float64 {
	v, ok := record[name]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return def
}

// intField coerces a record field to int, falling back to def.
func intField(record models.RawRecord, name string, def int) int {
	return int(floatField(record, name, float64(def)))
}

// stringField coerces a record field to a string, falling back to def when
// the field is absent.
func stringField(record models.RawRecord, name, def string) string {
	v, ok := record[name]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
