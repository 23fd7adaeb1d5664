package ui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/event"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/ui/component"
	"github.com/robgonnella/wisp/internal/ui/key"
)

type view struct {
	ctx         context.Context
	cancel      context.CancelFunc
	app         *tview.Application
	root        *tview.Flex
	header      *component.Header
	recordTable *component.RecordTable
	events      event.Manager
	eventChan   chan event.Event
	listenerIDs []int
	finished    bool
	mux         sync.Mutex
	logger      logger.Logger
}

func newView(ctx context.Context, cancel context.CancelFunc, input string, events event.Manager) *view {
	header := component.NewHeader(input)
	recordTable := component.NewRecordTable()

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header.Primitive(), 8, 1, false).
		AddItem(recordTable.Primitive(), 0, 1, true)

	v := &view{
		ctx:         ctx,
		cancel:      cancel,
		app:         tview.NewApplication(),
		root:        root,
		header:      header,
		recordTable: recordTable,
		events:      events,
		eventChan:   make(chan event.Event, 1000),
		logger:      logger.New(),
	}

	for _, t := range []event.EventType{
		event.RunStartedEventType,
		event.RecordCompletedEventType,
		event.RunFinishedEventType,
	} {
		v.listenerIDs = append(v.listenerIDs, events.RegisterListener(t, v.eventChan))
	}

	return v
}

func (v *view) bindKeys() {
	v.app.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		if evt.Key() == key.KeyCtrlC {
			v.logger.Info().Msg("run canceled from ui")
			v.stop()
			return nil
		}

		if evt.Rune() == key.RuneQuit && v.isFinished() {
			v.stop()
			return nil
		}

		return evt
	})
}

func (v *view) isFinished() bool {
	v.mux.Lock()
	defer v.mux.Unlock()
	return v.finished
}

func (v *view) handleEvent(evt event.Event) {
	switch evt.Type {
	case event.RunStartedEventType:
		if payload, ok := evt.Payload.(event.RunStarted); ok {
			v.header.SetTotal(payload.Total)
		}
	case event.RecordCompletedEventType:
		if rec, ok := evt.Payload.(*device.Record); ok {
			v.header.Count(rec.Status == device.StatusOK)
			v.recordTable.AppendRecord(rec)
		}
	case event.RunFinishedEventType:
		v.mux.Lock()
		v.finished = true
		v.mux.Unlock()
		v.header.SetFinished()
	}
}

func (v *view) processBackgroundEventUpdates() {
	go func() {
		for {
			select {
			case <-v.ctx.Done():
				return
			case evt := <-v.eventChan:
				v.app.QueueUpdateDraw(func() {
					v.handleEvent(evt)
				})
			}
		}
	}()
}

func (v *view) stop() {
	for _, id := range v.listenerIDs {
		v.events.RemoveListener(id)
	}

	v.cancel()
	v.app.Stop()
}

func (v *view) run() error {
	v.bindKeys()
	v.processBackgroundEventUpdates()
	return v.app.SetRoot(v.root, true).Run()
}
