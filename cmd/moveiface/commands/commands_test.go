package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/cmd/moveiface/commands"
	"go.trai.ch/moveiface/internal/app"
	"go.trai.ch/moveiface/internal/build"
	"go.trai.ch/moveiface/internal/core/domain"
)

type mockApp struct {
	verifyFunc func(ctx context.Context, opts app.VerifyOptions) error
	indexFunc  func(ctx context.Context, opts app.IndexOptions) error
	sampleFunc func(ctx context.Context, opts app.SampleOptions) error
}

func (m *mockApp) Verify(ctx context.Context, opts app.VerifyOptions) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Index(ctx context.Context, opts app.IndexOptions) error {
	if m.indexFunc != nil {
		return m.indexFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Sample(ctx context.Context, opts app.SampleOptions) error {
	if m.sampleFunc != nil {
		return m.sampleFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Verify(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.VerifyOptions
		mock := &mockApp{
			verifyFunc: func(_ context.Context, opts app.VerifyOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"verify",
			"--package-id", "0x2", "--package-id", "0x3",
			"--catalog", "catalog.json", "--network", "testnet",
			"--no-rpc", "-j", "4", "--mode", "both", "--resume",
		})
		require.NoError(t, cli.Execute(context.Background()))

		assert.Equal(t, domain.ConfigFileName, captured.ConfigPath)
		assert.Equal(t, []string{"0x2", "0x3"}, captured.Inputs.PackageIDs)
		assert.Equal(t, []string{"catalog.json"}, captured.Inputs.CatalogFiles)
		assert.Equal(t, "testnet", captured.Inputs.Network)

		o := captured.Overrides
		require.NotNil(t, o.NoRPC)
		assert.True(t, *o.NoRPC)
		require.NotNil(t, o.Workers)
		assert.Equal(t, 4, *o.Workers)
		require.NotNil(t, o.OutputMode)
		assert.Equal(t, "both", *o.OutputMode)
		require.NotNil(t, o.Resume)
		assert.True(t, *o.Resume)
	})

	t.Run("unset flags keep the configuration", func(t *testing.T) {
		var captured app.VerifyOptions
		mock := &mockApp{
			verifyFunc: func(_ context.Context, opts app.VerifyOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"verify", "--discover"})
		require.NoError(t, cli.Execute(context.Background()))

		assert.True(t, captured.Inputs.Discover)
		assert.Equal(t, app.Overrides{}, captured.Overrides)
	})

	t.Run("returns error on verify failure", func(t *testing.T) {
		mock := &mockApp{
			verifyFunc: func(context.Context, app.VerifyOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"verify"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.ErrorContains(t, err, "simulated error")
	})
}

func TestCommands_Index(t *testing.T) {
	var captured app.IndexOptions
	mock := &mockApp{
		indexFunc: func(_ context.Context, opts app.IndexOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"index", "out/legacy.jsonl", "-o", "idx"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.IndexOptions{Source: "out/legacy.jsonl", OutDir: "idx"}, captured)

	t.Run("requires a source", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"index"})
		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Sample(t *testing.T) {
	mock := &mockApp{
		sampleFunc: func(_ context.Context, opts app.SampleOptions) error {
			assert.Equal(t, 5, opts.Size)
			assert.Equal(t, []string{"ids.txt"}, opts.Inputs.IDFiles)
			_, err := opts.Out.Write([]byte("0x2\n"))
			return err
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, new(bytes.Buffer))
	cli.SetArgs([]string{"sample", "-n", "5", "--ids-file", "ids.txt"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "0x2\n", buf.String())
}

func TestCommands_SampleSizeHelp(t *testing.T) {
	for _, tt := range []struct {
		args []string
		want string
	}{
		{[]string{"sample", "--help"}, "0 or less selects every id"},
		{[]string{"verify", "--help"}, "0 verifies every id"},
	} {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs(tt.args)
		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), tt.want)
	}
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
