package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldForPath_InverseOfPathOf(t *testing.T) {
	for _, acc := range Accessors() {
		f, ok := FieldForPath(acc.ExternalPath())
		if assert.True(t, ok, acc.ExternalPath()) {
			assert.Equal(t, acc.Field, f)
		}
	}

	_, ok := FieldForPath("emitter.company")
	assert.False(t, ok)
}

func TestAccessorClear(t *testing.T) {
	b := &Bspaoh{DestinationOperationCode: Ptr("R 1"), DestinationReceptionWastePackagingsAcceptation: []PackagingAcceptation{{ID: "packaging_0"}}}

	for _, f := range []Field{DestinationOperationCode, DestinationReceptionWastePackagingsAcceptation} {
		acc, ok := AccessorFor(f)
		assert.True(t, ok)
		acc.Clear(b)
		assert.True(t, b.IsNull(f), f)
	}
}
