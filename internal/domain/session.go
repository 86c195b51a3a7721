package domain

// PlaybackState is the play/pause state of a session's shared clock
type PlaybackState string

const (
	StatePaused  PlaybackState = "paused"
	StatePlaying PlaybackState = "playing"
)
