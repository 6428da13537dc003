//go:build linux

package reactor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt/metrics"
	"github.com/coredrift/taskrt/reactor"
)

func TestPoller_OpenWithMetricsRecordsPollWakeEvents(t *testing.T) {
	provider := metrics.NewBasicProvider()

	p, err := reactor.OpenWithMetrics(provider)
	require.NoError(t, err)
	defer p.Close()

	pipe, err := reactor.OpenPipe()
	require.NoError(t, err)
	defer pipe.Read.Close()
	defer pipe.Write.Close()

	require.NoError(t, p.Add(pipe.Read.FD(), reactor.Readable, reactor.FDTag(int32(pipe.Read.FD()))))

	_, err = pipe.Write.Write([]byte("x"))
	require.NoError(t, err)

	events, err := p.Poll(make([]reactor.Event, 0, 8), time.Second)
	require.NoError(t, err)
	require.Len(t, events, 1)

	hist := provider.Histogram(metrics.NameReactorPolls).(*metrics.BasicHistogram)
	snap := hist.Snapshot()
	require.Equal(t, int64(1), snap.Count)
	require.Equal(t, 1.0, snap.Sum)
}
