package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/registry"
)

const (
	welcomeText    = "Welcome to the department arcade! Type \"list\" to see the departments or \"help\" for every command.\n"
	unmountedText  = "No department is open. Type \"open <department>\" to pick one.\n"
	introHintText  = "Type \"start\" to play, or \"close\" to go back.\n"
	winText        = "Department complete!"
	winHintText    = "Type \"restart\" to play again, or \"close\" to go back.\n"
	promptText     = "> "
	maxRuleWidth   = 60
	catchLaneWidth = 20
)

const (
	runnerCells = 30
	// the runner stands 50 across a 600 wide field
	runnerPlayerCell = 2
)

const helpText = `Arcade:
  list                     show the departments
  open <dept> [kind]       open a department, optionally with another game
  start | abort | restart  control the open department
  show                     redraw the screen
  close                    close the department
  quit                     leave
Games:
  rotate <ring> <deg>, release <ring>     ring cipher
  tap <pad>                               memory, reflex
  move <x>                                falling catch
  hit                                     rhythm
  swap <i> <j>, order <id>..., submit     sequence ordering
  type <field> <text>, submit             text builders
  ask <id>, guessing on|off, guess <id>   role guessing
  spin, headline <text>, publish, next    spin story
  answer <n>, build <id>, clear           tech challenge
  jump                                    pixel runner
`

var (
	colorTitle   = color.Style{color.OpBold}
	colorSubtle  = color.Style{color.FgGray}
	colorWrong   = color.Style{color.FgRed, color.OpBold}
	colorCorrect = color.Style{color.FgGreen, color.OpBold}
	colorAction  = color.Style{color.FgMagenta}
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// Renderer draws snapshots as text. Plain renderers never emit colour codes.
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool
	width int
}

func NewRenderer(out io.Writer, plain bool) *Renderer {
	return &Renderer{out: out, plain: plain, width: Width()}
}

// write serialises output from the prompt and the arcade's notices
func (r *Renderer) write(text string, a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	SendText(r.out, text, a...)
}

func (r *Renderer) paint(style color.Style, s string) string {
	if r.plain {
		return s
	}
	return style.Sprint(s)
}

func (r *Renderer) accent(hex, s string) string {
	if r.plain || hex == "" {
		return s
	}
	return color.HEX(hex).Sprint(s)
}

func (r *Renderer) rule() string {
	w := r.width
	if w <= 0 || w > maxRuleWidth {
		w = maxRuleWidth
	}
	return strings.Repeat("─", w)
}

func (r *Renderer) Welcome() {
	r.write("%s", welcomeText)
}

func (r *Renderer) Help() {
	r.write("%s", helpText)
}

func (r *Renderer) Prompt() {
	r.write("%s", r.paint(colorAction, promptText))
}

func (r *Renderer) Error(err error) {
	r.write("%s\n", r.paint(colorWrong, err.Error()))
}

func (r *Renderer) Departments(depts []registry.Department, reg registry.Registry) {
	for _, d := range depts {
		desc := reg.Resolve(d.ID)
		r.write("%s %-10s %s %s\n",
			desc.Icon,
			r.accent(desc.Accent, d.ID),
			d.Name,
			r.paint(colorSubtle, "("+d.Tagline+")"),
		)
	}
}

func (r *Renderer) Snapshot(snap engine.Snapshot) {
	r.write("%s\n", buildSnapshotText(r, snap))
}

func buildSnapshotText(r *Renderer, snap engine.Snapshot) string {
	if snap.Screen == engine.Unmounted || snap.Descriptor == nil {
		return unmountedText
	}
	desc := *snap.Descriptor

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s %s\n%s\n", r.rule(), desc.Icon, r.accent(desc.Accent, r.paint(colorTitle, desc.Title)), r.paint(colorSubtle, desc.Subtitle))

	switch snap.Screen {
	case engine.Intro:
		fmt.Fprintf(&b, "%s (%s)\n\n%s", snap.DepartmentID, desc.Kind, introHintText)

	case engine.Playing:
		if snap.Game != nil {
			b.WriteString(buildGameText(r, *snap.Game))
		}

	case engine.Win:
		fmt.Fprintf(&b, "\n%s\n\n\"%s\"\n\n%s", r.paint(colorCorrect, winText), desc.Quote, winHintText)
	}

	return b.String()
}

func buildGameText(r *Renderer, v game.View) string {
	var b strings.Builder

	status := v.Status.String()
	switch v.Status {
	case game.Wrong:
		status = r.paint(colorWrong, status)
	case game.Correct:
		status = r.paint(colorCorrect, status)
	}
	fmt.Fprintf(&b, "%d/%d  %s\n\n", v.Score, v.Goal, status)

	switch board := v.Board.(type) {
	case game.CipherBoard:
		for i, ring := range board.Rings {
			state := "turning"
			if ring.Locked {
				state = r.paint(colorCorrect, "locked")
			}
			fmt.Fprintf(&b, "ring %d  %6.1f°  %s\n", i, ring.Rotation, state)
		}

	case game.MemoryBoard:
		pads := make([]string, board.Pads)
		for i := range pads {
			pads[i] = fmt.Sprintf("[%d]", i)
			if i == board.Showing {
				pads[i] = r.paint(colorCorrect, "[*]")
			}
		}
		turn := "watch"
		if board.UserTurn {
			turn = fmt.Sprintf("your turn, step %d of %d", board.UserStep+1, board.Length)
		}
		fmt.Fprintf(&b, "%s\n%s\n", strings.Join(pads, " "), turn)

	case game.ReflexBoard:
		for i, lit := range board.Cells {
			cell := fmt.Sprintf("[%d]", i)
			if lit {
				cell = r.paint(colorCorrect, "[#]")
			}
			b.WriteString(cell)
			if (i+1)%3 == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}

	case game.CatchBoard:
		lane := []rune(strings.Repeat(".", catchLaneWidth))
		for _, item := range board.Items {
			if item.Y < 0 {
				continue
			}
			mark := 'o'
			if item.Bad {
				mark = 'x'
			}
			lane[laneCell(item.X)] = mark
		}
		paddle := []rune(strings.Repeat(" ", catchLaneWidth))
		paddle[laneCell(board.Paddle)] = '='
		fmt.Fprintf(&b, "%s\n%s\n", string(lane), string(paddle))

	case game.RhythmBoard:
		track := []rune(strings.Repeat("-", 21))
		track[int(board.Target/5)] = '|'
		track[int(board.Marker/5)] = '*'
		fmt.Fprintf(&b, "%s\n", string(track))

	case game.OrderingBoard:
		fmt.Fprintf(&b, "%s\n", board.Scenario)
		for i, step := range board.Items {
			fmt.Fprintf(&b, "%d. %s %s\n", i, r.paint(colorSubtle, step.ID), step.Text)
		}

	case game.RoleBoard:
		for _, a := range board.History {
			answer := "no"
			if a.Yes {
				answer = "yes"
			}
			fmt.Fprintf(&b, "%s %s\n", a.Question, r.paint(colorAction, answer))
		}
		if board.Guessing {
			for _, role := range board.Roles {
				label := role.Label
				if role.ID == board.WrongGuess {
					label = r.paint(colorWrong, label)
				}
				fmt.Fprintf(&b, "guess %-10s %s\n", role.ID, label)
			}
		} else {
			for _, q := range board.Questions {
				fmt.Fprintf(&b, "ask %-10s %s\n", q.ID, q.Text)
			}
		}

	case game.BuilderBoard:
		fmt.Fprintf(&b, "%s: %s\n", r.paint(colorTitle, board.Prompt.Title), board.Prompt.Brief)
		for _, hint := range board.Prompt.Hints {
			fmt.Fprintf(&b, "  - %s\n", r.paint(colorSubtle, hint))
		}
		for _, f := range board.Fields {
			fmt.Fprintf(&b, "%-12s %s\n", f.Name, f.Value)
		}
		fmt.Fprintf(&b, "%ds left\n", board.Remaining)

	case game.SpinBoard:
		fmt.Fprintf(&b, "%s  %s\n", board.Phase, board.Topic)
		if board.Headline != "" {
			fmt.Fprintf(&b, "%q\n", board.Headline)
		}
		if board.Phase == game.Published {
			fmt.Fprintf(&b, "%d likes, %d shares\n", board.Likes, board.Shares)
		}

	case game.TechBoard:
		if board.Stage == 1 {
			fmt.Fprintf(&b, "%s\n", board.Riddle.Question)
			for i, opt := range board.Riddle.Options {
				if i == board.WrongPick {
					opt = r.paint(colorWrong, opt)
				}
				fmt.Fprintf(&b, "answer %d  %s\n", i, opt)
			}
			break
		}
		fmt.Fprintf(&b, "build %s: %s\n", board.Build.Name, strings.Join(board.Build.Required, ", "))
		fmt.Fprintf(&b, "palette: %s\n", strings.Join(board.Palette, " "))
		fmt.Fprintf(&b, "so far: %s\n", strings.Join(board.Components, " "))

	case game.RunnerBoard:
		b.WriteString(buildRunnerText(board))
		if board.Lost {
			fmt.Fprintf(&b, "%s  type \"jump\" to run again\n", r.paint(colorWrong, "GAME OVER"))
		}
		fmt.Fprintf(&b, "best %d\n", board.HighScore)
	}

	return b.String()
}

// buildRunnerText draws the field as two rows, the air and the ground.
// The player always runs in the same column.
func buildRunnerText(board game.RunnerBoard) string {
	cell := board.Width / runnerCells
	if cell <= 0 {
		cell = 1
	}
	air := []rune(strings.Repeat(" ", runnerCells))
	ground := []rune(strings.Repeat("_", runnerCells))

	for _, o := range board.Obstacles {
		i := int(o.X / cell)
		if i < 0 || i >= runnerCells {
			continue
		}
		ground[i] = '#'
	}

	player := runnerPlayerCell
	if board.Jumping {
		air[player] = '@'
	} else {
		ground[player] = '@'
	}

	return fmt.Sprintf("%s\n%s\n", string(air), string(ground))
}

func laneCell(x float64) int {
	cell := int(x / 100 * catchLaneWidth)
	if cell < 0 {
		return 0
	}
	if cell >= catchLaneWidth {
		return catchLaneWidth - 1
	}
	return cell
}
