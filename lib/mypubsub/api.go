package mypubsub

import (
	"context"
	"os"
)

var New func(c context.Context) (PubSub, func(), error)

//go:generate mockgen -source=api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, data string) error
}

func isRunningOnGcloud() bool {
	return os.Getenv("GOOGLE_CLOUD_PROJECT") != ""
}
