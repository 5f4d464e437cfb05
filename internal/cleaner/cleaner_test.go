package cleaner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FraudScope/internal/dataset"
	"FraudScope/internal/feature"
	"FraudScope/pkg/config"
	"FraudScope/pkg/logger"
)

const rawCSV = `transaction_id,amount,category,merchant,timestamp,location,device,card_present,cvv_present,card_bin,ip_address,chargeback_history,notes,is_fraud
t1,"$1,200.50",Food,Amazon,2024-01-15T10:30:00,US,mobile,1,1,411111,1.2.3.4,0,,0
t2,50,Travel,Uber,2024-01-16T22:05:00,US,desktop,0,1,424242,1.2.3.5,1,disputed by holder,1
t3,,Food,Amazon,2024-02-01T08:00:00,CA,mobile,1,0,411111,1.2.3.6,0,,0
t4,75.25,,Walmart,2024-02-02T13:45:00,US,,1,1,400000,1.2.3.7,0,,0
t5,50000,Travel,AirFrance,2024-02-03T03:10:00,FR,mobile,0,0,453201,1.2.3.8,2,,1
t6,20,Food,Amazon,2024-02-04T16:20:00,US,mobile,1,1,411111,1.2.3.9,0,,0
t6,20,Food,Amazon,2024-02-04T16:20:00,US,mobile,1,1,411111,1.2.3.9,0,,0
t7,10,Other,Target,2024-02-05T19:00:00,US,desktop,1,1,401288,1.2.3.10,0,manual review,0
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	raw := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(raw, []byte(rawCSV), 0o644))

	cfg := &config.Config{}
	cfg.Dataset.RawPath = raw
	cfg.Dataset.CleanPath = filepath.Join(dir, "transactions_clean.csv")
	cfg.Dataset.Label = "is_fraud"
	cfg.Artifacts.Dir = filepath.Join(dir, "models")
	cfg.Artifacts.SchemaFile = "train_columns.json"
	cfg.Artifacts.ScalerFile = "transaction_scaler.json"
	return cfg
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lg, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return lg
}

func TestRunProducesCleanArtifacts(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, Run(cfg, testLogger(t)))

	clean, err := dataset.ReadCSV(cfg.Dataset.CleanPath)
	require.NoError(t, err)

	// One exact duplicate row removed.
	assert.Len(t, clean.Rows, 7)

	// Label stays last and unscaled.
	assert.Equal(t, "is_fraud", clean.Columns[len(clean.Columns)-1])
	labelIdx := len(clean.Columns) - 1
	for _, row := range clean.Rows {
		assert.Contains(t, []string{"0", "1"}, row[labelIdx])
	}

	// Identifier and PII columns are gone.
	for _, name := range []string{"transaction_id", "ip_address", "notes", "email", "timestamp"} {
		assert.Equal(t, -1, clean.Col(name), name)
	}

	// Derived and one-hot features exist.
	for _, name := range []string{
		"transaction_hour", "transaction_day", "is_high_amount", "has_notes",
		"card_info_match", "merchant_Amazon", "category_Travel",
		"location_US", "device_mobile",
	} {
		assert.GreaterOrEqual(t, clean.Col(name), 0, name)
	}

	schema, err := feature.LoadSchema(cfg.SchemaPath())
	require.NoError(t, err)
	assert.Equal(t, len(clean.Columns)-1, schema.Len())
	_, hasLabel := schema.Index("is_fraud")
	assert.False(t, hasLabel)

	scaler, err := feature.LoadScaler(cfg.ScalerPath())
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "chargeback_history", "transaction_hour", "transaction_day"}, scaler.Columns)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig(t)
	lg := testLogger(t)

	require.NoError(t, Run(cfg, lg))
	first, err := os.ReadFile(cfg.Dataset.CleanPath)
	require.NoError(t, err)
	firstScaler, err := os.ReadFile(cfg.ScalerPath())
	require.NoError(t, err)

	require.NoError(t, Run(cfg, lg))
	second, err := os.ReadFile(cfg.Dataset.CleanPath)
	require.NoError(t, err)
	secondScaler, err := os.ReadFile(cfg.ScalerPath())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstScaler, secondScaler)
}

func TestNormalizeAmounts(t *testing.T) {
	f := &dataset.Frame{
		Columns: []string{"amount"},
		Rows:    [][]string{{"$1,200.50"}, {"50"}, {""}, {"75.25"}},
	}
	require.NoError(t, normalizeAmounts(f, 0))

	assert.Equal(t, "1200.5", f.Rows[0][0])
	assert.Equal(t, "50", f.Rows[1][0])
	// Missing value takes the median of the known amounts.
	assert.Equal(t, "75.25", f.Rows[2][0])

	bad := &dataset.Frame{Columns: []string{"amount"}, Rows: [][]string{{"abc"}}}
	assert.Error(t, normalizeAmounts(bad, 0))
}

func TestFillMode(t *testing.T) {
	f := &dataset.Frame{
		Columns: []string{"category"},
		Rows:    [][]string{{"Food"}, {""}, {"Food"}, {"Travel"}},
	}
	fillMode(f, "category")
	assert.Equal(t, "Food", f.Rows[1][0])
}

func TestDropDuplicates(t *testing.T) {
	f := &dataset.Frame{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "x"}, {"1", "x"}, {"1", "y"}},
	}
	dropDuplicates(f)
	assert.Equal(t, [][]string{{"1", "x"}, {"1", "y"}}, f.Rows)
}

func TestTukeyFence(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	lower, upper := tukeyFence(x)
	assert.InDelta(t, -1.0, lower, 1e-9)
	assert.InDelta(t, 7.0, upper, 1e-9)
}

func TestOneHotSortedAndNamed(t *testing.T) {
	f := &dataset.Frame{
		Columns: []string{"device"},
		Rows:    [][]string{{"mobile"}, {"desktop"}, {"mobile"}},
	}
	cols := oneHot(f, "device")
	require.Len(t, cols, 2)
	assert.Equal(t, "device_desktop", cols[0].name)
	assert.Equal(t, "device_mobile", cols[1].name)
	assert.Equal(t, []float64{0, 1, 0}, cols[0].vals)
	assert.Equal(t, []float64{1, 0, 1}, cols[1].vals)
}

func TestDeriveHighAmountUsesMedian(t *testing.T) {
	f := &dataset.Frame{
		Columns: []string{"card_present", "cvv_present"},
		Rows:    [][]string{{"1", "1"}, {"0", "1"}, {"1", "0"}},
	}
	amounts := []float64{10, 100, 1000}
	hours := []float64{9, 12, 15}
	days := []float64{1, 2, 3}

	cols := derive(f, amounts, hours, days)
	byName := map[string][]float64{}
	for _, c := range cols {
		byName[c.name] = c.vals
	}

	// Median is 100; only the strictly larger amount flags high.
	assert.Equal(t, []float64{0, 0, 1}, byName["is_high_amount"])
	assert.Equal(t, []float64{1, 0, 0}, byName["card_info_match"])
	assert.Equal(t, hours, byName["transaction_hour"])
	assert.Equal(t, days, byName["transaction_day"])
}
