package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

func flatten(t *testing.T, raw string) model.FlatInput {
	t.Helper()
	in, err := model.ParseInput([]byte(raw))
	require.NoError(t, err)
	flat, err := in.Flatten()
	require.NoError(t, err)
	return flat
}

func TestUpdatedFields(t *testing.T) {
	persisted := &model.Bspaoh{
		WasteCode:               model.Ptr("18 01 02"),
		EmitterCompanySiret:     model.Ptr("11111111111111"),
		EmitterWasteWeightValue: model.Ptr(12.5),
	}
	persisted.TransporterTransportPlates = []string{"AB-123-CD"}

	flat := flatten(t, `{
		"waste": {"code": "18 01 02"},
		"emitter": {"company": {"siret": "22222222222222"}, "emission": {"detail": {"weight": {"value": 12.5}}}},
		"transporter": {"transport": {"plates": ["AB-123-CD"]}}
	}`)

	got, err := New().UpdatedFields(flat, persisted)
	require.NoError(t, err)
	assert.Equal(t, []model.Field{model.EmitterCompanySiret}, got)
}

func TestUpdatedFields_NullAndEmpty(t *testing.T) {
	persisted := &model.Bspaoh{WasteAdr: nil}

	flat := flatten(t, `{"waste": {"adr": ""}, "transporter": {"transport": {"plates": []}}}`)

	got, err := New().UpdatedFields(flat, persisted)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdatedFields_Creation(t *testing.T) {
	flat := flatten(t, `{"waste": {"code": "18 01 02", "adr": null}}`)

	got, err := New().UpdatedFields(flat, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
