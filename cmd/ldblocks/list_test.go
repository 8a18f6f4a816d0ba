package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/ldblocks"
	main "github.com/fwojciec/ldblocks/cmd/ldblocks"
	"github.com/fwojciec/ldblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists indexed documents", func(t *testing.T) {
		t.Parallel()

		index := &mock.BlockIndex{
			FindDocumentIDsFn: func(context.Context) ([]string, error) {
				return []string{"2", "10"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Index: index}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Equal(t, "2\n10\n", stdout.String())
	})

	t.Run("shows helpful message when no document uses blocks", func(t *testing.T) {
		t.Parallel()

		index := &mock.BlockIndex{
			FindDocumentIDsFn: func(context.Context) ([]string, error) {
				return []string{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Index: index}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "ldblocks save")
	})

	t.Run("lists pipeline records", func(t *testing.T) {
		t.Parallel()

		updated := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, pipeline ldblocks.Pipeline) ([]*ldblocks.Record, error) {
				assert.Equal(t, ldblocks.PipelineHowTo, pipeline)
				return []*ldblocks.Record{
					{DocumentID: "1", StructuredData: json.RawMessage(`{}`), CSS: ".a{}", LastUpdate: updated},
					{DocumentID: "2", CSS: ".b{}", LastUpdate: updated},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: records}

		require.NoError(t, (&main.ListCmd{Pipeline: "howto"}).Run(deps))
		assert.Equal(t,
			"1  2025-01-15T10:00:00Z  [structured-data css]\n2  2025-01-15T10:00:00Z  [css]\n",
			stdout.String())
	})
}
