package monitor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startmenudetection/startmenudetection/internal/config"
	"github.com/startmenudetection/startmenudetection/internal/flagstore"
	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

// scriptedProber returns samples in order and fails once they run out
// unless failAt stops it earlier.
type scriptedProber struct {
	samples []bool
	calls   int
	failAt  int
	failErr error
	closed  bool
}

func (p *scriptedProber) IsLauncherVisible() (bool, error) {
	if p.failErr != nil && p.calls == p.failAt {
		p.calls++
		return false, p.failErr
	}
	if p.calls >= len(p.samples) {
		return false, errors.New("no more samples")
	}
	v := p.samples[p.calls]
	p.calls++
	return v, nil
}

func (p *scriptedProber) Backend() string { return "scripted" }

func (p *scriptedProber) Close() error {
	p.closed = true
	return nil
}

// keyAfter reports a keypress once the prober has been sampled n times.
type keyAfter struct {
	prober *scriptedProber
	n      int
}

func (k *keyAfter) Pending() bool { return k.prober.calls >= k.n }

func (k *keyAfter) Close() error { return nil }

type recordingWriter struct {
	values []bool
}

func (w *recordingWriter) Write(shown bool) {
	w.values = append(w.values, shown)
}

type failingStore struct {
	calls int
}

func (s *failingStore) SetFlag(value uint32) error {
	s.calls++
	return &flagstore.StoreAccessError{Kind: flagstore.WriteDenied, Path: "key", Name: "Open", Err: errors.New("access is denied")}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Monitor.PollInterval = time.Millisecond
	return cfg
}

func runSamples(t *testing.T, samples []bool, writer FlagWriter) (*Service, string, error) {
	t.Helper()

	prober := &scriptedProber{samples: samples}
	var out bytes.Buffer
	svc := NewService(testConfig(), prober, &keyAfter{prober: prober, n: len(samples)}, writer, &out)

	err := svc.Run(context.Background())
	return svc, out.String(), err
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestRunReportsOnlyTransitions(t *testing.T) {
	writer := &recordingWriter{}
	svc, out, err := runSamples(t, []bool{false, false, true, true, false}, writer)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"0: " + LabelDesktop,
		"1: " + LabelStartScreen,
		"2: " + LabelDesktop,
	}, outputLines(out))
	assert.Equal(t, []bool{false, true, false}, writer.values)
	assert.Equal(t, 3, svc.Reports())
}

func TestRunSingleSample(t *testing.T) {
	writer := &recordingWriter{}
	svc, out, err := runSamples(t, []bool{true}, writer)
	require.NoError(t, err)

	assert.Equal(t, []string{"0: " + LabelStartScreen}, outputLines(out))
	assert.Equal(t, []bool{true}, writer.values)
	assert.Equal(t, 1, svc.Reports())
}

func TestRunReportRule(t *testing.T) {
	tests := [][]bool{
		{false},
		{true, true, true},
		{false, true, false, true},
		{true, false, false, false, true, true},
	}

	for i, samples := range tests {
		t.Run(fmt.Sprintf("sequence %d", i), func(t *testing.T) {
			writer := &recordingWriter{}
			svc, out, err := runSamples(t, samples, writer)
			require.NoError(t, err)

			var want []string
			var wantValues []bool
			for j, s := range samples {
				if j == 0 || s != samples[j-1] {
					want = append(want, fmt.Sprintf("%d: %s", len(want), Label(s)))
					wantValues = append(wantValues, s)
				}
			}

			assert.Equal(t, want, outputLines(out))
			assert.Equal(t, wantValues, writer.values)
			assert.Equal(t, len(want), svc.Reports())
		})
	}
}

func TestRunStopsOnPendingInputBeforeSampling(t *testing.T) {
	writer := &recordingWriter{}
	svc, out, err := runSamples(t, nil, writer)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Empty(t, writer.values)
	assert.Equal(t, 0, svc.Reports())
}

func TestRunSurvivesStoreFailure(t *testing.T) {
	store := &failingStore{}
	var logs bytes.Buffer
	writer := flagstore.NewWriter(store, log.New(&logs, "", 0))

	svc, out, err := runSamples(t, []bool{false, true, true, false}, writer)
	require.NoError(t, err)

	assert.Len(t, outputLines(out), 3)
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 3, svc.Reports())
	assert.Contains(t, logs.String(), "Access denied writing Open")
}

func TestRunQueryErrorOnFirstSample(t *testing.T) {
	osErr := visibility.NewOSError("IAppVisibility::IsLauncherVisible", -2147418113, nil)
	prober := &scriptedProber{samples: []bool{true}, failAt: 0, failErr: osErr}
	writer := &recordingWriter{}
	var out bytes.Buffer
	svc := NewService(testConfig(), prober, &keyAfter{prober: prober, n: 10}, writer, &out)

	err := svc.Run(context.Background())
	require.Error(t, err)

	got, ok := visibility.AsOSError(err)
	require.True(t, ok, "Run() error is not an OSError: %v", err)
	assert.Equal(t, int64(-2147418113), got.Code())
	assert.Empty(t, out.String())
	assert.Empty(t, writer.values)
	assert.Equal(t, 0, svc.Reports())
}

func TestRunQueryErrorAfterReports(t *testing.T) {
	osErr := visibility.NewOSError("IAppVisibility::IsLauncherVisible", 5, nil)
	prober := &scriptedProber{samples: []bool{true, false, false}, failAt: 2, failErr: osErr}
	writer := &recordingWriter{}
	var out bytes.Buffer
	svc := NewService(testConfig(), prober, &keyAfter{prober: prober, n: 10}, writer, &out)

	err := svc.Run(context.Background())
	assert.True(t, visibility.IsOSError(err))
	assert.Equal(t, 2, svc.Reports())
	assert.Equal(t, []bool{true, false}, writer.values)
}

func TestRunContextCanceled(t *testing.T) {
	prober := &scriptedProber{samples: []bool{false, false, false}}
	cfg := testConfig()
	cfg.Monitor.PollInterval = time.Hour
	svc := NewService(cfg, prober, &keyAfter{prober: prober, n: 10}, &recordingWriter{}, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, prober.calls)
}
