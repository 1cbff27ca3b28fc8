package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaders(t *testing.T) {
	warnings := ValidateHeaders([]string{"Title", "item", "IssueUrl", "Quantity", "Status", "Age", "PendingReason"})

	require.Len(t, warnings, 2)
	assert.Equal(t, FieldItem, warnings[0].Field)
	assert.Contains(t, warnings[0].Message, `rename it to "Item"`)
	assert.Equal(t, FieldPhysicalLocation, warnings[1].Field)
	assert.Contains(t, warnings[1].String(), "PhysicalLocation")
}

func TestValidateHeaders_Complete(t *testing.T) {
	assert.Empty(t, ValidateHeaders(RecognizedFields))
}

func TestValidateValues(t *testing.T) {
	records := []Record{
		rec(map[string]any{"Quantity": "two", "Age": 3}),
		rec(map[string]any{"Quantity": "x", "Age": "old"}),
		rec(map[string]any{"Quantity": 4}),
		rec(map[string]any{}),
	}

	warnings := ValidateValues(records)

	require.Len(t, warnings, 2)
	assert.Equal(t, ValidationWarning{Field: FieldQuantity, Rows: 2, Message: "2 rows have a non-numeric value"}, warnings[0])
	assert.Equal(t, FieldAge, warnings[1].Field)
	assert.Equal(t, 1, warnings[1].Rows)
}

func TestValidateTable(t *testing.T) {
	table := NewTable(RecognizedFields, [][]string{{"", "", "", "", "u", "many", "", ""}})
	warnings := ValidateTable(table)

	require.Len(t, warnings, 1)
	assert.Equal(t, FieldQuantity, warnings[0].Field)
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.NoError(t, ThresholdsConfig{}.Validate())

	err := ThresholdsConfig{FCReceiveAgeThreshold: -1, MFIAgeThreshold: -2}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidThresholds))
	assert.Contains(t, err.Error(), "fc receive")
	assert.Contains(t, err.Error(), "mfi")
	assert.NotContains(t, err.Error(), "fc actionable")
}

func TestParseThresholdsYAML(t *testing.T) {
	got, err := ParseThresholdsYAML([]byte("mfi_age_threshold: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, ThresholdsConfig{FCReceiveAgeThreshold: 10, FCActionableAgeThreshold: 10, MFIAgeThreshold: 2}, got)

	_, err = ParseThresholdsYAML([]byte("fc_receive_age_threshold: -4\n"))
	assert.ErrorIs(t, err, ErrInvalidThresholds)

	_, err = ParseThresholdsYAML([]byte("fc_receive_age_threshold: [1\n"))
	assert.Error(t, err)
}

func TestLoadThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fc_actionable_age_threshold: 1\n"), 0o644))

	got, err := LoadThresholdsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FCActionableAgeThreshold)

	_, err = LoadThresholdsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClientContext(t *testing.T) {
	assert.Equal(t, Client{}, ClientFrom(context.Background()))

	want := Client{IP: "10.0.0.1", UserAgent: "curl/8"}
	assert.Equal(t, want, ClientFrom(WithClient(context.Background(), want)))
}
