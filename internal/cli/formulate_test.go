package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulateRendersRecipeCard(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair")
	require.NoError(t, err)

	assert.Contains(t, out, "Éclair (eclair_v1_9304)")
	assert.Contains(t, out, "Serves 12")
	assert.Contains(t, out, "CHOUX PASTRY SHELL")
	assert.Contains(t, out, "PASTRY CREAM FILLING")
	assert.Contains(t, out, "CHOCOLATE GLAZE")
	assert.Contains(t, out, "INSTRUCTIONS")
	assert.Contains(t, out, "Labels:")
	assert.Contains(t, out, "vegan")
	assert.Contains(t, out, "Sustainability: grade A")
	assert.Contains(t, out, "Cost: €")
	assert.Contains(t, out, "Prediction:")
}

func TestFormulateJSONEnvelope(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "eclair_v1_9304", data["id"])
	assert.Equal(t, float64(12), data["yield_servings"])
	assert.NotEmpty(t, data["ingredients"])
}

func TestFormulateUnknownDessert(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "tiramisu")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "unknown dessert type")
	assert.Contains(t, out, "tiramisu")
}

func TestFormulateUnknownDessertJSON(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "tiramisu", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeUnknownDessert, resp.Error.Code)
}

func TestFormulateUnsatisfiableConstraints(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "creme_brulee", "--constraint", "sugar_free")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Caramelized Sugar Top")
}

func TestFormulateRejectsUnknownConstraint(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair", "--constraint", "keto")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `unknown dietary constraint "keto"`)
}

func TestFormulateRequiresDessertFlag(t *testing.T) {
	_, _, err := executeCommand(t, "formulate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dessert")
}

func TestFormulateShowsBudgetWarning(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair", "--budget", "0.50")
	require.NoError(t, err)
	assert.Contains(t, out, "Over budget")
	assert.Contains(t, out, "€0.50 limit")
}

func TestFormulateFromCatalogFile(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair",
		"--catalog", "../catalog/data/ingredients.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Éclair (eclair_v1_9304)")
}

func TestFormulateMissingCatalogFile(t *testing.T) {
	out, _, err := executeCommand(t, "formulate", "--dessert", "eclair", "--catalog", "missing.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "failed to read dataset")
}

func TestFormulateVerboseLogsGoToStderr(t *testing.T) {
	out, errOut, err := executeCommand(t, "formulate", "--dessert", "eclair", "--format", "json", "-v")
	require.NoError(t, err)

	assert.Contains(t, errOut, "formulating eclair")

	// Verbose logging must not corrupt the JSON stream.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}
