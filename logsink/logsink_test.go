package logsink_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/citysolid/logsink"
)

func TestLogger_DebugGating(t *testing.T) {
	var buf logsink.Buffer
	quiet := logsink.New(&buf, false)
	quiet.Printf("PHASE %d", 1)
	quiet.Debugf("hidden %s", "line")
	require.Equal(t, []string{"PHASE 1"}, buf.Lines())

	buf.Reset()
	loud := logsink.New(&buf, true)
	loud.Debugf("shown")
	require.Equal(t, "shown", buf.String())
	require.True(t, loud.Debug())
}

func TestBuffer_Concurrent(t *testing.T) {
	var buf logsink.Buffer
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf.Append("x")
			}
		}()
	}
	wg.Wait()
	require.Len(t, buf.Lines(), 800)
}

func TestDefaultLifecycle(t *testing.T) {
	t.Cleanup(logsink.ClearDefault)

	require.Equal(t, logsink.Nop{}, logsink.Default())
	l := logsink.Logger{}
	l.Printf("dropped")

	var buf logsink.Buffer
	logsink.SetDefault(&buf)
	l.Printf("kept")
	require.Equal(t, []string{"kept"}, buf.Lines())

	logsink.ClearDefault()
	l.Printf("dropped again")
	require.Len(t, buf.Lines(), 1)

	var got []string
	logsink.SetDefault(logsink.Func(func(s string) { got = append(got, s) }))
	l.Printf("func")
	require.NoError(t, logsink.CloseDefault())
	require.Equal(t, []string{"func"}, got)
	require.Equal(t, logsink.Nop{}, logsink.Default())
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := logsink.NewZap(zap.New(core))
	logsink.New(s, false).Printf("sewing at %.3f", 0.01)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "sewing at 0.010", logs.All()[0].Message)

	require.NotPanics(t, func() { logsink.NewZap(nil).Append("nothing") })
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convert.log")
	f := logsink.NewFile(path)
	logsink.SetDefault(f)
	logsink.Logger{}.Printf("building %s", "b-1")
	require.NoError(t, logsink.CloseDefault())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"building b-1"`)
}
