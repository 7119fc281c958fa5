package gamesController

import (
	"gameshelf/internal/charts"
	"gameshelf/internal/events"
	"gameshelf/internal/view"

	logger "github.com/Bparsons0904/goLogger"
)

type Publisher interface {
	Publish(channel events.Channel, event events.Event) error
}

// BroadcastSink publishes renders and charts on the broadcast channel,
// where the websocket manager picks them up.
type BroadcastSink struct {
	publisher Publisher
	log       logger.Logger
}

func NewBroadcastSink(publisher Publisher) *BroadcastSink {
	return &BroadcastSink{publisher: publisher, log: logger.New("BroadcastSink")}
}

func (s *BroadcastSink) PushRender(render view.Render) {
	s.publish(events.RENDER, map[string]any{"render": render})
}

func (s *BroadcastSink) PushCharts(charts charts.Charts) {
	s.publish(events.CHARTS, map[string]any{"charts": charts})
}

func (s *BroadcastSink) publish(messageType events.MessageType, data map[string]any) {
	err := s.publisher.Publish(events.BROADCAST_CHANNEL, events.Event{Type: messageType, Data: data})
	if err != nil {
		s.log.Function("publish").Warn("failed to publish projection", "type", messageType, "error", err)
	}
}
