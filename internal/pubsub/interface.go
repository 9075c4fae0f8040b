package pubsub

type PubSubClient interface {
	SendMessage(event EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
