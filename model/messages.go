package model

// ReplyMsg carries the outcome of an asynchronous model call back to the
// UI loop. Turn identifies the send that produced it.
type ReplyMsg struct {
	Turn     int
	Response *ModelResponse
	Err      error
}

// FilePickedMsg reports the picker result. Paths is empty on cancel.
type FilePickedMsg struct {
	Paths []string
}

// EndpointStatusMsg reports whether the model endpoint answered a ping.
type EndpointStatusMsg struct {
	ModelID string
	Err     error
}
