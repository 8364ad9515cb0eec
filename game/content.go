package game

// Step is one item of a sequence ordering scenario
type Step struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Scenario struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

var orderingScenarios = map[string][]Scenario{
	"pm": {
		{Name: "Quick Event", Steps: []Step{
			{"1", "Set the Date"}, {"2", "Send Invites"}, {"3", "Buy Supplies"}, {"4", "Host Party"},
		}},
		{Name: "New Product", Steps: []Step{
			{"1", "Brainstorm Idea"}, {"2", "Build Prototype"}, {"3", "Test It"}, {"4", "Launch It"},
		}},
		{Name: "Hiring Process", Steps: []Step{
			{"1", "Post Job Ad"}, {"2", "Interview"}, {"3", "Hire Candidate"}, {"4", "Train Team"},
		}},
	},
	"logistics": {
		{Name: "Simple Delivery", Steps: []Step{
			{"1", "Pack Box"}, {"2", "Label Box"}, {"3", "Load Truck"}, {"4", "Drive to House"},
		}},
		{Name: "Morning Routine", Steps: []Step{
			{"1", "Wake Up"}, {"2", "Eat Breakfast"}, {"3", "Pack Bag"}, {"4", "Go to School"},
		}},
		{Name: "Pizza Order", Steps: []Step{
			{"1", "Make Dough"}, {"2", "Add Toppings"}, {"3", "Bake in Oven"}, {"4", "Deliver Pizza"},
		}},
	},
}

const defaultOrderingTable = "pm"

// Role is a hidden identity in the role guessing game
type Role struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Traits map[string]bool `json:"-"`
}

// Question asks about one trait; a "!" prefix asks about its negation
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

var hrRoles = []Role{
	{ID: "leader", Label: "The Team Leader", Traits: map[string]bool{"people": true, "charge": true, "detail": false, "creative": false}},
	{ID: "mediator", Label: "The Mediator", Traits: map[string]bool{"people": true, "charge": false, "detail": false, "creative": false}},
	{ID: "analyst", Label: "The Analyst", Traits: map[string]bool{"people": false, "charge": false, "detail": true, "creative": false}},
	{ID: "innovator", Label: "The Innovator", Traits: map[string]bool{"people": false, "charge": true, "detail": false, "creative": true}},
	{ID: "strategist", Label: "The Strategist", Traits: map[string]bool{"people": false, "charge": true, "detail": true, "creative": false}},
	{ID: "creative", Label: "The Creative", Traits: map[string]bool{"people": true, "charge": false, "detail": false, "creative": true}},
}

var hrQuestions = []Question{
	{"people", "Do I enjoy working closely with people?"},
	{"charge", "Do I naturally take charge of situations?"},
	{"detail", "Do I prefer working with data and details?"},
	{"creative", "Do I often come up with wild new ideas?"},
	{"!people", "Do I prefer working alone in quiet?"},
	{"!charge", "Am I comfortable following someone else?"},
	{"!detail", "Do I focus on the big picture over specs?"},
	{"!creative", "Do I prefer proven methods over risks?"},
}

var prTopics = []string{
	"New Ice Cream Flavor", "School Talent Show", "Found a Lost Puppy",
	"Big Sports Match Win", "Library Book Sale", "Video Game Tournament",
	"Free Pizza Party", "School Holiday News",
}

// Riddle is the first stage of the tech challenge
type Riddle struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"-"`
}

// Build is the second stage of the tech challenge
type Build struct {
	Name     string   `json:"name"`
	Required []string `json:"required"`
}

var itRiddles = []Riddle{
	{"I have keys but no locks. I have a space but no room. You can enter, but never go outside.", []string{"Cloud Server", "Keyboard", "Database"}, 1},
	{"I run all day but never move. I have a port but no ship.", []string{"Server", "Internet", "Cable"}, 0},
	{"I have a lot of memories, but I forget everything when the power cuts.", []string{"Hard Drive", "RAM", "Flash Drive"}, 1},
	{"I am the brain of the computer, but I have no thoughts of my own.", []string{"Motherboard", "CPU", "Transistor"}, 1},
	{"I catch bugs but have no net. I interrupt you when I find a mistake.", []string{"Compiler", "Firewall", "Router"}, 0},
}

var itBuilds = []Build{
	{"LOGIN PAGE", []string{"header", "input", "button"}},
	{"VIDEO PORTAL", []string{"header", "video", "button"}},
	{"SEARCH APP", []string{"header", "input", "button"}},
	{"CHAT INTERFACE", []string{"header", "input", "input"}},
}

var buildPalette = []string{"header", "input", "video", "button"}

// Prompt is the randomly drawn brief of a text builder
type Prompt struct {
	Title string   `json:"title"`
	Brief string   `json:"brief"`
	Hints []string `json:"hints,omitempty"`
}

// Field is a required answer box of a text builder
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

var pitchPrompts = []Prompt{
	{"Community Garden", "Pitch a garden that feeds the neighbourhood.", pitchHints},
	{"Student Library", "Pitch a library run by and for students.", pitchHints},
	{"Local Food Drive", "Pitch a food drive before the winter break.", pitchHints},
	{"Tech for Seniors", "Pitch weekend sessions teaching phones to grandparents.", pitchHints},
	{"Youth Art Festival", "Pitch a festival where every wall becomes a canvas.", pitchHints},
}

var pitchHints = []string{
	"Did you know?", "Imagine a world...", "We have a crisis...",
	"Our proven method...", "A new technology...", "Community power...",
	"Donate $10 today", "Join our team", "Spread the word",
}

var pitchFields = []Field{
	{"hook", "Hook: why should they listen?"},
	{"solution", "Solution: what will you do?"},
	{"ask", "Ask: what do you need from them?"},
}

var chaosPrompts = []Prompt{
	{"Event Day Meltdown", "The venue double-booked, the speaker is late and the banner has a typo.",
		[]string{"Call the venue", "Text the speaker", "Reprint the banner", "Update the schedule", "Post on socials"}},
	{"Inbox Avalanche", "Forty unread messages, two deadlines today and a meeting in ten minutes.",
		[]string{"Reply to the sponsor", "Finish the report", "Prepare meeting notes", "Archive newsletters"}},
	{"Launch Week", "Website bug, missing photos, and the press release is not approved.",
		[]string{"Fix the bug", "Chase the photographer", "Get sign-off", "Brief the team"}},
}

var chaosFields = []Field{
	{"now", "Do now"},
	{"delegate", "Delegate"},
	{"later", "Park for later"},
}

var creativePrompts = []Prompt{
	{"Six Words", "Announce the talent show in exactly six words.", nil},
	{"No Letter E", "Invite everyone to the book sale without using the letter E.", nil},
	{"One Emoji", "Explain the new recycling rule using one emoji and one sentence.", nil},
	{"Question Only", "Promote the charity run using only questions.", nil},
}

var creativeFields = []Field{
	{"headline", "Headline"},
	{"message", "Message"},
}

var visualPrompts = []Prompt{
	{"Crowded Poster", "A poster with five fonts, three logos and the date in the corner.", nil},
	{"Empty Feed", "A social feed of grey product photos with no people in them.", nil},
	{"Mixed Signals", "A smiling mascot beside a red warning banner about fees.", nil},
}

var visualFields = []Field{
	{"observe", "What do you see first?"},
	{"message", "What is it trying to say?"},
	{"improve", "What would you change?"},
}

var systemPrompts = []Prompt{
	{"Vending Machine", "Coins in, snack out. Describe it as a system.", nil},
	{"Traffic Light", "A four-way junction with a pedestrian button.", nil},
	{"Library Checkout", "Borrowing a book with a student card.", nil},
	{"Food Delivery App", "From tapping order to a knock on the door.", nil},
}

var systemFields = []Field{
	{"inputs", "Inputs"},
	{"process", "Process"},
	{"outputs", "Outputs"},
	{"edge_cases", "Edge cases"},
}
