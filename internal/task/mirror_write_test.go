package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/memory"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/task"
)

func TestMirrorWriteTask(t *testing.T) {
	ctx := context.Background()
	dst := memory.New()
	require.NoError(t, dst.Init(ctx))

	value := []byte(`{"currentDay":3}`)
	mt := task.NewMirrorWriteTask(dst, "numbers-progress", value)
	value[2] = 'X'

	assert.Equal(t, task.TaskTypeMirrorWrite, mt.Type())
	assert.Equal(t, "numbers-progress", mt.Key())
	require.NoError(t, mt.Execute(ctx))

	got, err := dst.Read(ctx, "numbers-progress")
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentDay":3}`, string(got))
}

func TestMirrorWriteTask_PropagatesFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dst := memory.New()
	require.NoError(t, dst.Init(ctx))
	cancel()

	err := task.NewMirrorWriteTask(dst, "k", []byte(`1`)).Execute(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mirror write "k"`)
}
