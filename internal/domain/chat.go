package domain

// ChatMessage is the transport-neutral view of one channel message, carrying
// just what the cleanup sweeper needs.
type ChatMessage struct {
	ID       string
	AuthorID string
	Pinned   bool
}
