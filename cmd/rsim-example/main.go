// Command rsim-example wires a simple.Sender, simple.Link, and
// simple.Receiver across three SimDispatchers and drives them to
// completion: the embedder-side assembly for a minimal clocked pipeline,
// kept runnable outside of `go test` so the kernel's behavior can be
// observed directly.
package main

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/component"
	"github.com/rsim-go/rsim/component/simple"
	"github.com/rsim-go/rsim/dispatcher"
	"github.com/rsim-go/rsim/manager"
	"github.com/rsim-go/rsim/rsimlog"
)

const numPackets = 100

func main() {
	logger := rsimlog.New(rsimlog.Config{Level: rsimlog.InfoLevel, Output: os.Stdout})

	ackCh := make(chan rsim.EventID, 4096)
	m := manager.New(ackCh, manager.WithLogger(logger))

	senderToLink := make(chan rsim.Event, 64)
	linkToReceiver := make(chan rsim.Event, 64)

	sender := simple.NewSender("sender", m, numPackets, senderToLink, ackCh)
	link := simple.NewLink("link", m, senderToLink, linkToReceiver, ackCh)
	receiver := simple.NewReceiver("receiver", linkToReceiver, ackCh)

	dispatchers := []*dispatcher.SimDispatcher{
		dispatcher.New(m, []component.Component{sender}, dispatcher.WithLogger(logger)),
		dispatcher.New(m, []component.Component{link}, dispatcher.WithLogger(logger)),
		dispatcher.New(m, []component.Component{receiver}, dispatcher.WithLogger(logger)),
	}
	for _, d := range dispatchers {
		d.Init()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for _, d := range dispatchers {
		wg.Add(1)
		go func(d *dispatcher.SimDispatcher) {
			defer wg.Done()
			d.Run(ctx)
		}(d)
	}

	start := time.Now()
	if err := m.Run(); err != nil {
		logger.Error().Err(err).Msg("simulation terminated with an error")
		os.Exit(1)
	}
	elapsed := time.Since(start).Seconds()

	wg.Wait()

	processed := m.EventsProcessed()
	logger.Info().
		Uint64("events_processed", processed).
		Float64("seconds", elapsed).
		Float64("events_per_second", float64(processed)/elapsed).
		Int("packets_received", len(receiver.Received)).
		Msg("finished processing")
}
