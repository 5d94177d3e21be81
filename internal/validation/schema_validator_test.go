package validation

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBytes_Recipes(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		contains  string
	}{
		{
			name: "valid",
			data: `{"Plank": {"output_qty": 1, "inputs": {"Wood": 2}, "description": "Sawn", "local_image_path": "p.png"}}`,
		},
		{
			name: "output omitted",
			data: `{"Table": {"inputs": {"Plank": 4}}}`,
		},
		{
			name:      "negative output",
			data:      `{"Plank": {"output_qty": -1, "inputs": {"Wood": 2}}}`,
			wantError: true,
			contains:  "/Plank/output_qty",
		},
		{
			name:      "zero ingredient",
			data:      `{"Plank": {"inputs": {"Wood": 0}}}`,
			wantError: true,
			contains:  "/Plank/inputs/Wood",
		},
		{
			name:      "string quantity",
			data:      `{"Plank": {"inputs": {"Wood": "two"}}}`,
			wantError: true,
			contains:  "/Plank/inputs/Wood",
		},
		{
			name:      "not an object",
			data:      `["Plank"]`,
			wantError: true,
			contains:  "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), RecipesSchema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaViolation)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBytes_RawMaterials(t *testing.T) {
	v := NewSchemaValidator()

	assert.NoError(t, v.ValidateBytes([]byte(`["Wood", "Stone"]`), RawMaterialsSchema))
	assert.NoError(t, v.ValidateBytes([]byte(`[]`), RawMaterialsSchema))

	err := v.ValidateBytes([]byte(`["Wood", ""]`), RawMaterialsSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/1")

	assert.ErrorIs(t, v.ValidateBytes([]byte(`{"Wood": true}`), RawMaterialsSchema), ErrSchemaViolation)
}

func TestValidateBytes_Errors(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{`), RecipesSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")

	err = v.ValidateBytes([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

// The shipped sample catalog must always pass its own schemas.
func TestSampleCatalogMatchesSchemas(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	configs := filepath.Join(filepath.Dir(file), "..", "..", "configs")

	v := NewSchemaValidator()
	for name, schema := range map[string]string{
		"recipes.json":       RecipesSchema,
		"raw_materials.json": RawMaterialsSchema,
	} {
		data, err := os.ReadFile(filepath.Join(configs, name))
		require.NoError(t, err)
		assert.NoError(t, v.ValidateBytes(data, schema), name)
	}
}
