package cleaner

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"FraudScope/internal/dataset"
	"FraudScope/internal/feature"
	"FraudScope/pkg/config"
	"FraudScope/pkg/logger"
	"FraudScope/pkg/stats"
	"FraudScope/pkg/util"
)

// catColumns are the one-hot encoded categorical fields, in output order.
var catColumns = []string{"merchant", "category", "location", "device"}

// modeFilled are the string columns whose missing values take the column mode.
var modeFilled = []string{"category", "device", "notes"}

// scaledColumns is the fixed subset the standard scaler is fitted on.
var scaledColumns = []string{"amount", "chargeback_history", "transaction_hour", "transaction_day"}

// dropColumns are identifier/PII columns removed from the model input.
var dropColumns = []string{
	"transaction_id", "user_id", "merchant_id", "auth_code", "card_pan",
	"card_expiry", "email", "phone", "notes", "ip_address",
}

// passthroughNumeric are raw numeric columns kept as model features.
var passthroughNumeric = []string{"amount", "card_present", "cvv_present", "card_bin", "chargeback_history"}

type column struct {
	name string
	vals []float64
}

// Run executes the offline cleaning pipeline: parse and impute the raw CSV,
// drop duplicates, clip outliers, derive features, one-hot encode, fit and
// apply the scaler, and persist the clean dataset, schema, and scaler.
// Deterministic: the same input produces byte-identical outputs.
func Run(cfg *config.Config, log *logger.Logger) error {
	frame, err := dataset.ReadCSV(cfg.Dataset.RawPath)
	if err != nil {
		return err
	}
	log.Info("raw dataset loaded",
		logger.String("path", cfg.Dataset.RawPath),
		logger.Int("rows", len(frame.Rows)),
		logger.Int("columns", len(frame.Columns)),
	)

	trimCells(frame)

	amountIdx := frame.Col("amount")
	if amountIdx < 0 {
		return fmt.Errorf("raw dataset has no amount column")
	}
	if err := normalizeAmounts(frame, amountIdx); err != nil {
		return err
	}

	for _, name := range modeFilled {
		fillMode(frame, name)
	}

	before := len(frame.Rows)
	dropDuplicates(frame)
	log.Info("duplicates dropped", logger.Int("before", before), logger.Int("after", len(frame.Rows)))

	amounts := columnFloats(frame, amountIdx)
	lower, upper := tukeyFence(amounts)
	for i, v := range amounts {
		if v < lower {
			amounts[i] = lower
		} else if v > upper {
			amounts[i] = upper
		}
	}
	log.Info("amount outliers clipped", logger.Float64("lower", lower), logger.Float64("upper", upper))

	cols, err := assemble(frame, amounts)
	if err != nil {
		return err
	}

	scaler := feature.NewScaler()
	if err := fitAndScale(scaler, cols); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Artifacts.Dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}
	if err := scaler.Save(cfg.ScalerPath()); err != nil {
		return err
	}

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.name != cfg.Dataset.Label {
			names = append(names, c.name)
		}
	}
	if err := feature.NewSchema(names).Save(cfg.SchemaPath()); err != nil {
		return err
	}

	clean := toFrame(cols)
	if err := clean.WriteCSV(cfg.Dataset.CleanPath); err != nil {
		return err
	}

	log.Info("clean dataset saved",
		logger.String("path", cfg.Dataset.CleanPath),
		logger.Int("rows", len(clean.Rows)),
		logger.Int("features", len(names)),
	)
	return nil
}

// trimCells strips surrounding whitespace from every cell.
func trimCells(f *dataset.Frame) {
	for _, row := range f.Rows {
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
	}
}

// normalizeAmounts parses currency-formatted amounts ("$1,234.56") into
// canonical floats and fills missing values with the column median.
func normalizeAmounts(f *dataset.Frame, idx int) error {
	parsed := make([]float64, len(f.Rows))
	present := make([]bool, len(f.Rows))
	known := make([]float64, 0, len(f.Rows))

	for i, row := range f.Rows {
		s := strings.NewReplacer("$", "", ",", "").Replace(row[idx])
		if s == "" {
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("row %d: parse amount %q: %w", i+1, row[idx], err)
		}
		parsed[i], _ = d.Float64()
		present[i] = true
		known = append(known, parsed[i])
	}

	median := stats.Median(known)
	for i, row := range f.Rows {
		v := parsed[i]
		if !present[i] {
			v = median
		}
		row[idx] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return nil
}

// fillMode replaces empty cells of the named column with the column mode.
func fillMode(f *dataset.Frame, name string) {
	idx := f.Col(name)
	if idx < 0 {
		return
	}
	col := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		col[i] = row[idx]
	}
	mode := stats.ModeString(col)
	for _, row := range f.Rows {
		if row[idx] == "" {
			row[idx] = mode
		}
	}
}

// dropDuplicates removes exact-duplicate rows, keeping first occurrences.
func dropDuplicates(f *dataset.Frame) {
	seen := make(map[string]struct{}, len(f.Rows))
	out := f.Rows[:0]
	for _, row := range f.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	f.Rows = out
}

func columnFloats(f *dataset.Frame, idx int) []float64 {
	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		out[i], _ = strconv.ParseFloat(row[idx], 64)
	}
	return out
}

// tukeyFence returns [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
func tukeyFence(x []float64) (float64, float64) {
	q1 := stats.Percentile(x, 25)
	q3 := stats.Percentile(x, 75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// assemble builds the fully numeric output columns: raw numeric passthrough,
// derived features, one-hot categoricals, auto-encoded stragglers, and the
// label last.
func assemble(f *dataset.Frame, amounts []float64) ([]column, error) {
	n := len(f.Rows)

	hours := make([]float64, n)
	days := make([]float64, n)
	tsIdx := f.Col("timestamp")
	if tsIdx < 0 {
		return nil, fmt.Errorf("raw dataset has no timestamp column")
	}
	for i, row := range f.Rows {
		t, ok := util.ParseTime(row[tsIdx])
		if !ok {
			return nil, fmt.Errorf("row %d: parse timestamp %q", i+1, row[tsIdx])
		}
		hours[i] = float64(t.Hour())
		days[i] = float64(t.Day())
	}

	var cols []column
	handled := map[string]bool{"timestamp": true}
	for _, name := range dropColumns {
		handled[name] = true
	}

	for _, name := range passthroughNumeric {
		idx := f.Col(name)
		if idx < 0 {
			continue
		}
		handled[name] = true
		vals := make([]float64, n)
		for i, row := range f.Rows {
			vals[i] = parseNumeric(row[idx])
		}
		if name == "amount" {
			vals = amounts
		}
		cols = append(cols, column{name, vals})
	}

	cols = append(cols, derive(f, amounts, hours, days)...)

	for _, name := range catColumns {
		handled[name] = true
		cols = append(cols, oneHot(f, name)...)
	}

	// Any leftover column must end up numeric: pass numeric columns through
	// and one-hot encode the rest.
	labelName := ""
	for ci, name := range f.Columns {
		if handled[name] {
			continue
		}
		if name == "is_fraud" {
			labelName = name
			continue
		}
		if allNumeric(f, ci) {
			vals := make([]float64, n)
			for i, row := range f.Rows {
				vals[i] = parseNumeric(row[ci])
			}
			cols = append(cols, column{name, vals})
		} else {
			cols = append(cols, oneHot(f, name)...)
		}
	}

	if labelName == "" {
		return nil, fmt.Errorf("raw dataset has no is_fraud column")
	}
	labelIdx := f.Col(labelName)
	labels := make([]float64, n)
	for i, row := range f.Rows {
		labels[i] = parseNumeric(row[labelIdx])
	}
	cols = append(cols, column{labelName, labels})

	return cols, nil
}

// derive computes the engineered features. The training-time is_high_amount
// threshold is the post-clip amount median, unlike the fixed 500 used when
// serving.
func derive(f *dataset.Frame, amounts, hours, days []float64) []column {
	n := len(f.Rows)
	median := stats.Median(amounts)

	high := make([]float64, n)
	for i, v := range amounts {
		if v > median {
			high[i] = 1
		}
	}

	match := make([]float64, n)
	cpIdx, cvIdx := f.Col("card_present"), f.Col("cvv_present")
	for i, row := range f.Rows {
		if cpIdx >= 0 && cvIdx >= 0 && parseNumeric(row[cpIdx]) != 0 && parseNumeric(row[cvIdx]) != 0 {
			match[i] = 1
		}
	}

	cols := []column{
		{"transaction_hour", hours},
		{"transaction_day", days},
		{"is_high_amount", high},
	}

	if notesIdx := f.Col("notes"); notesIdx >= 0 {
		notes := make([]float64, n)
		for i, row := range f.Rows {
			if row[notesIdx] != "" {
				notes[i] = 1
			}
		}
		cols = append(cols, column{"has_notes", notes})
	}

	cols = append(cols, column{"card_info_match", match})
	return cols
}

// oneHot expands a categorical column into sorted indicator columns named
// "{field}_{value}".
func oneHot(f *dataset.Frame, name string) []column {
	idx := f.Col(name)
	if idx < 0 {
		return nil
	}

	values := make([]string, 0)
	seen := make(map[string]bool)
	for _, row := range f.Rows {
		if !seen[row[idx]] {
			seen[row[idx]] = true
			values = append(values, row[idx])
		}
	}
	sort.Strings(values)

	cols := make([]column, 0, len(values))
	for _, v := range values {
		vals := make([]float64, len(f.Rows))
		for i, row := range f.Rows {
			if row[idx] == v {
				vals[i] = 1
			}
		}
		cols = append(cols, column{name + "_" + v, vals})
	}
	return cols
}

func allNumeric(f *dataset.Frame, ci int) bool {
	for _, row := range f.Rows {
		if _, err := strconv.ParseFloat(row[ci], 64); err != nil {
			return false
		}
	}
	return true
}

func parseNumeric(s string) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if b, err := strconv.ParseBool(s); err == nil && b {
		return 1
	}
	return 0
}

// fitAndScale fits the scaler on the fixed numeric subset and standardizes
// those columns in place.
func fitAndScale(scaler *feature.Scaler, cols []column) error {
	names := make([]string, 0, len(scaledColumns))
	vals := make([][]float64, 0, len(scaledColumns))
	for _, want := range scaledColumns {
		for _, c := range cols {
			if c.name == want {
				names = append(names, c.name)
				vals = append(vals, c.vals)
				break
			}
		}
	}
	if err := scaler.Fit(names, vals); err != nil {
		return err
	}
	for _, name := range names {
		for _, c := range cols {
			if c.name == name {
				if err := scaler.TransformCol(name, c.vals); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func toFrame(cols []column) *dataset.Frame {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	n := 0
	if len(cols) > 0 {
		n = len(cols[0].vals)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = strconv.FormatFloat(c.vals[i], 'g', -1, 64)
		}
		rows[i] = row
	}
	return &dataset.Frame{Columns: names, Rows: rows}
}
