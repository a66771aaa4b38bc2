package interact

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gotracer "github.com/jdginn/go-reflection-tracer/tracer"
)

var (
	docStyle       = lipgloss.NewStyle().Margin(1, 2)
	reflectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	stoppedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

type item struct {
	step gotracer.Step
}

func (i item) Title() string {
	switch {
	case i.step.Reflected:
		return reflectedStyle.Render(fmt.Sprintf("tick %d: reflected off %s", i.step.Tick, i.step.Hit.Collider))
	case i.step.HasHit:
		return stoppedStyle.Render(fmt.Sprintf("tick %d: hit %s (%s)", i.step.Tick, i.step.Hit.Collider, i.step.Hit.Tag))
	}
	return fmt.Sprintf("tick %d: no hit", i.step.Tick)
}

func (i item) Description() string {
	o, d := i.step.After.Origin, i.step.After.Direction
	return fmt.Sprintf("origin (%.4f, %.4f) direction (%.4f, %.4f)", o.X, o.Y, d.X, d.Y)
}

func (i item) FilterValue() string {
	return i.Title()
}

// Session is everything the stepper needs to drive a tracer
type Session struct {
	World     *gotracer.World
	Tracer    *gotracer.Tracer
	Recorder  *gotracer.Recorder
	View      *gotracer.View
	Placement gotracer.Placement
	// Image rewritten after every step. Empty disables rendering.
	Out string
}

type model struct {
	list    list.Model
	session Session
	err     error
}

func newModel(s Session) model {
	m := model{list: list.New(nil, list.NewDefaultDelegate(), 0, 0), session: s}
	m.list.Title = "Reflection tracer (n: step, r: reset, q: quit)"
	s.Tracer.Start(s.Placement)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) step() (model, tea.Cmd) {
	step := m.session.Tracer.Update()
	cmd := m.list.InsertItem(len(m.list.Items()), item{step: step})
	m.list.Select(len(m.list.Items()) - 1)
	m.err = m.render()
	return m, cmd
}

func (m model) reset() (model, tea.Cmd) {
	m.session.Tracer.Start(m.session.Placement)
	if m.session.Recorder != nil {
		m.session.Recorder.Reset()
	}
	cmd := m.list.SetItems(nil)
	m.err = m.render()
	return m, cmd
}

func (m model) render() error {
	s := m.session
	if s.Out == "" || s.View == nil || s.Recorder == nil {
		return nil
	}
	img := s.View.Render(s.World, s.Recorder.Lines, s.Tracer.Tick())
	return gotracer.SavePNG(s.Out, img)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "n", " ":
			return m.step()
		case "r":
			return m.reset()
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	view := m.list.View()
	if m.err != nil {
		view += "\n" + stoppedStyle.Render(m.err.Error())
	}
	return docStyle.Render(view)
}

// Interact runs the stepper until the user quits
func Interact(s Session) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running stepper: %w", err)
	}
	return nil
}
