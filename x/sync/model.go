package sync

// ChannelRequest is sent by a connected client to (re)select the rooms
// it wants to watch
type ChannelRequest struct {
	Channels []string `json:"channels"`
}
