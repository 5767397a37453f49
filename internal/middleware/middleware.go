// Package middleware holds Watermill middleware shared by module routers.
package middleware

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// CommonMetadata stamps every outbound message with the producing service
// name and processing timestamp.
func CommonMetadata(service string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				return nil, err
			}
			now := time.Now().UTC().Format(time.RFC3339)
			for _, m := range produced {
				m.Metadata.Set("service", service)
				m.Metadata.Set("processed_at", now)
			}
			return produced, nil
		}
	}
}
