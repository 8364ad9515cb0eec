package protocol

// Action is a gameplay verb understood by one or more game kinds
type Action string

const (
	// ring cipher
	Rotate  Action = "rotate"
	Release Action = "release"
	// memory, reflex
	Tap Action = "tap"
	// falling catch
	Move Action = "move"
	// rhythm
	Hit Action = "hit"
	// sequence ordering
	Swap  Action = "swap"
	Order Action = "order"
	// shared by every kind with a submit button
	Submit Action = "submit"
	// text builders, spin story
	Type Action = "type"
	// role guessing
	Ask      Action = "ask"
	Guessing Action = "guessing"
	Guess    Action = "guess"
	// spin story
	Spin    Action = "spin"
	Publish Action = "publish"
	Next    Action = "next"
	// tech challenge
	Answer Action = "answer"
	Build  Action = "build"
	Clear  Action = "clear"
	// pixel runner
	Jump Action = "jump"
)

// Input is a single gameplay action. Which fields matter depends on the
// action: Index/To for positions, Delta for rotation, X for pointer
// position, ID for questions and roles, Field/Text for text entry.
type Input struct {
	Action Action   `json:"action"`
	Index  int      `json:"index,omitempty"`
	To     int      `json:"to,omitempty"`
	Delta  float64  `json:"delta,omitempty"`
	X      float64  `json:"x,omitempty"`
	ID     string   `json:"id,omitempty"`
	Field  string   `json:"field,omitempty"`
	Text   string   `json:"text,omitempty"`
	Order  []string `json:"order,omitempty"`
	On     bool     `json:"on,omitempty"`
}

// InboundMessage is a message from a visitor to their arcade
type InboundMessage struct {
	Command    Cmd    `json:"command"`
	Department string `json:"department,omitempty"`
	// Kind optionally overrides the department's game for practice play
	Kind  string `json:"kind,omitempty"`
	Input *Input `json:"input,omitempty"`
}
