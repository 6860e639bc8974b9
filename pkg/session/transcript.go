package session

// Transcript entry roles.
const (
	RolePlayer   = "player"   // text typed or chosen by the player
	RoleNarrator = "narrator" // Gem and the story voice
	RoleSystem   = "system"   // prompts, headers and farewell
)

// Entry is a single line of the session transcript.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
