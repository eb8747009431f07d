package notify

import (
	"context"
	"fmt"

	"savingsdesk/pkg/push"
)

type pushSender interface {
	Send(ctx context.Context, in *push.SendRequest, out *push.SendResponse) error
}

// PushDispatcher delivers events through the chat platform push gateway
type PushDispatcher struct {
	client pushSender
}

func NewPushDispatcher(c pushSender) *PushDispatcher {
	return &PushDispatcher{client: c}
}

func (d *PushDispatcher) Send(ctx context.Context, e Event) error {
	out := &push.SendResponse{}
	err := d.client.Send(ctx, &push.SendRequest{
		EventID:   e.ID,
		Platform:  e.Platform,
		UserID:    e.ExternalUserID,
		Type:      string(e.Type),
		ChannelID: e.ChannelID,
		Data:      e.Payload,
	}, out)
	if err != nil {
		return fmt.Errorf("push send: %w", err)
	}

	if !out.Success {
		return fmt.Errorf("push rejected: %s", out.Error)
	}

	return nil
}
