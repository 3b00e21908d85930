package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBudget_ZeroBudget(t *testing.T) {
	// a zero budget always reads as 0%, whatever the spend
	pct, warning := EvaluateBudget("Transport", 500, 0)
	assert.Equal(t, 0.0, pct)
	assert.Nil(t, warning)

	pct, warning = EvaluateBudget("Transport", 0, 0)
	assert.Equal(t, 0.0, pct)
	assert.Nil(t, warning)

	pct, warning = EvaluateBudget("Transport", 500, -10)
	assert.Equal(t, 0.0, pct)
	assert.Nil(t, warning)
}

func TestEvaluateBudget_TierBoundaries(t *testing.T) {
	// boundaries are inclusive at 100 / 90 / 70
	pct, warning := EvaluateBudget("Nourriture", 100, 100)
	require.NotNil(t, warning)
	assert.Equal(t, 100.0, pct)
	assert.Equal(t, "danger", warning.Level)

	pct, warning = EvaluateBudget("Nourriture", 90, 100)
	require.NotNil(t, warning)
	assert.Equal(t, "warning", warning.Level)

	pct, warning = EvaluateBudget("Nourriture", 89.999, 100)
	require.NotNil(t, warning)
	assert.InDelta(t, 89.999, pct, 1e-9)
	assert.Equal(t, "info", warning.Level)

	pct, warning = EvaluateBudget("Nourriture", 70, 100)
	require.NotNil(t, warning)
	assert.Equal(t, "info", warning.Level)

	pct, warning = EvaluateBudget("Nourriture", 69.999, 100)
	assert.InDelta(t, 69.999, pct, 1e-9)
	assert.Nil(t, warning)
}

func TestEvaluateBudget_Messages(t *testing.T) {
	_, warning := EvaluateBudget("Nourriture", 310, 300)
	require.NotNil(t, warning)
	assert.Equal(t, "danger", warning.Level)
	assert.Equal(t, "Budget Nourriture dépassé (103.3%)", warning.Message)

	_, warning = EvaluateBudget("Loisirs", 140, 150)
	require.NotNil(t, warning)
	assert.Equal(t, "warning", warning.Level)
	assert.Equal(t, "Attention — 93.3% du budget Loisirs", warning.Message)

	_, warning = EvaluateBudget("Santé", 40, 50)
	require.NotNil(t, warning)
	assert.Equal(t, "info", warning.Level)
	assert.Equal(t, "Approche: 80.0% du budget Santé", warning.Message)
}

func TestEvaluateBudget_OverBudget(t *testing.T) {
	pct, warning := EvaluateBudget("Logement", 1600, 800)
	require.NotNil(t, warning)
	assert.Equal(t, 200.0, pct)
	assert.Equal(t, "danger", warning.Level)
}
