package jsonlogic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_StandardLogic(t *testing.T) {
	ex := NewExecutor()
	logic := map[string]any{
		"and": []any{
			map[string]any{">": []any{map[string]any{"var": "refused"}, 0}},
			map[string]any{"==": []any{map[string]any{"var": "received"}, 0}},
		},
	}

	out, err := ex.Execute(context.Background(), logic, map[string]any{"refused": 5.0, "received": 0.0})
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = ex.Execute(context.Background(), logic, map[string]any{"refused": 5.0, "received": 10.0})
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestExecutor_RoundAtRoot(t *testing.T) {
	ex := NewExecutor()
	logic := map[string]any{
		"round": []any{
			map[string]any{"-": []any{map[string]any{"var": "received"}, map[string]any{"var": "refused"}}},
			6,
		},
	}

	out, err := ex.Execute(context.Background(), logic, map[string]any{"received": 50.0, "refused": 30.0})
	require.NoError(t, err)
	assert.Equal(t, 20.0, out)

	out, err = ex.Execute(context.Background(), logic, map[string]any{"received": 0.3, "refused": 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, out, 1e-9)
}

func TestExecutor_CustomOperator(t *testing.T) {
	ex := NewExecutor()
	ex.RegisterCustomOperator("double", func(args ...any) (any, error) {
		f, _ := toFloat64(args[0])
		return f * 2, nil
	})

	out, err := ex.Execute(context.Background(), map[string]any{"double": map[string]any{"var": "x"}}, map[string]any{"x": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 8.0, out)
}

func TestExecutor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor().Execute(ctx, map[string]any{"var": "x"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRound(t *testing.T) {
	out, err := Round(1.23456789, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.23, out)

	out, err = Round(nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = Round("x", 2)
	assert.Error(t, err)
}
