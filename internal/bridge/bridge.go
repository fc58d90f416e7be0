// Package bridge reports a validated registry to an experiment tracker over
// socket.io.
//
// The bridge is strictly a consumer of the registry: it runs after a
// successful build, never during one, so registry construction stays a pure
// transform. Emission is best-effort from the trainer's point of view but
// the CLI surfaces failures, since a run that the tracker never heard about
// is usually a misconfigured tracker URL.
package bridge

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/registry"
)

// Config holds the connection parameters for one emission.
type Config struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// TaskSummary is the per-task slice of the emitted snapshot.
type TaskSummary struct {
	Name        string   `json:"name"`
	Level       string   `json:"level"`
	Property    string   `json:"property"`
	Coefficient float64  `json:"coefficient"`
	Datasets    []string `json:"datasets"`
	Metrics     []string `json:"metrics"`
}

// Snapshot is the payload of the registry_loaded event.
type Snapshot struct {
	Tasks    []TaskSummary `json:"tasks"`
	Datasets []string      `json:"datasets"`
}

// SnapshotOf flattens a registry into its emitted form.
func SnapshotOf(reg *registry.Registry) Snapshot {
	snap := Snapshot{Datasets: reg.Datasets()}
	for _, t := range reg.Tasks() {
		snap.Tasks = append(snap.Tasks, TaskSummary{
			Name:        t.Name,
			Level:       string(t.Level),
			Property:    t.Property,
			Coefficient: t.Loss.Coefficient,
			Datasets:    t.Datasets,
			Metrics:     t.Metrics,
		})
	}
	return snap
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	err error
}

// Emit connects to the tracker, emits the snapshot as a registry_loaded
// event and waits for the tracker's registry_ack, the timeout, or context
// cancellation, whichever comes first.
func Emit(ctx context.Context, cfg Config, snap Snapshot) error {
	logger := ctxlog.FromContext(ctx).With("bridge_url", cfg.URL, "namespace", cfg.Namespace)
	logger.Debug("Bridge emission started.")
	defer logger.Debug("Bridge emission finished.")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse bridge URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)

	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting bridge client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to experiment tracker", "sid", io.Id())
		io.Emit("registry_loaded", snap)
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if e, ok := errs[0].(error); ok {
			done <- opResult{err: e}
			return
		}
		done <- opResult{err: fmt.Errorf("connect error: %v", errs[0])}
	})

	io.On(types.EventName("registry_ack"), func(...any) {
		done <- opResult{}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out waiting for tracker acknowledgement of registry_loaded")
	case res := <-done:
		return res.err
	}
}
