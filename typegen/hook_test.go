package typegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

func TestRunHook(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		command string
		files   []string
		wantErr bool
	}{
		{"empty command", "  ", nil, false},
		{"success", "true", nil, false},
		{"failure", "false", nil, true},
		{"files expand in place", `sh -c 'test "$#" -eq 2' _ {files}`, []string{"a.ts", "b.ts"}, false},
		{"files count mismatch", `sh -c 'test "$#" -eq 2' _ {files}`, []string{"a.ts"}, true},
		{"missing executable", "cs2ts-definitely-not-installed", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunHook(ctx, tt.command, dir, tt.files)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunHookOutputInDetail(t *testing.T) {
	err := RunHook(context.Background(), `sh -c 'echo formatter broke >&2; exit 3'`, t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, errors.GetAllDetails(err), "formatter broke")
}

func TestRunHookBadQuoting(t *testing.T) {
	err := RunHook(context.Background(), `prettier --write "unterminated`, t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
