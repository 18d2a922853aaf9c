package cmd

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
	"github.com/minepkg/modio/internals/commands"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/spf13/cobra"
)

func init() {
	runner := &downloadRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "download <mod id>...",
		Aliases: []string{"dl"},
		Short:   "Downloads the live files of mods",
		Long:    "Downloads the live files of mods into the mod directory. Downloaded mods are installed with \"modio install\" or the next time the game starts.",
		Args:    cobra.MinimumNArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.install, "install", false, "Install the mods after downloading")

	rootCmd.AddCommand(cmd.Command)
}

type downloadRunner struct {
	install bool
}

func (d *downloadRunner) RunE(cmd *cobra.Command, args []string) error {
	ids, err := parseModIDs(args)
	if err != nil {
		return err
	}

	instance, err := root.Instance()
	if err != nil {
		return err
	}
	defer instance.Shutdown()

	results, err := downloadMods(instance, ids)
	if err != nil {
		return err
	}

	failed := 0
	for _, id := range ids {
		code, ok := results[id]
		switch {
		case !ok:
			failed++
			fmt.Printf("%s %d %s\n", gchalk.Yellow("-"), id, gchalk.Gray("(aborted)"))
		case code == http.StatusOK:
			fmt.Printf("%s %d\n", checkMark, id)
		default:
			failed++
			fmt.Printf("%s %d %s\n", gchalk.Red("✗"), id, gchalk.Gray(describeCode(code)))
		}
	}

	if d.install {
		if err := installDownloaded(instance); err != nil {
			return err
		}
	}

	if failed != 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(ids))
	}
	return nil
}

// downloadMods downloads all mods and returns the status code per mod. A progress bar is
// shown on terminals
func downloadMods(instance *sdk.Instance, ids []uint32) (map[uint32]int, error) {
	results := make(map[uint32]int, len(ids))
	instance.SetDownloadListener(func(code int, modID uint32) {
		results[modID] = code
	})
	defer instance.SetDownloadListener(nil)

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		instance.DownloadMods(ids...)
		await(instance)
		return results, nil
	}

	model := newDownloadModel(instance, ids, results)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	return results, nil
}

func describeCode(code int) string {
	switch code {
	case 0:
		return "(network or file error, run with --verbose for details)"
	case http.StatusNotFound:
		return "(not found or no file)"
	default:
		return fmt.Sprintf("(%d %s)", code, http.StatusText(code))
	}
}

var (
	checkMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	doneStyle   = lipgloss.NewStyle().Margin(1, 2)
)

// frameMsg makes the model call Process
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// downloadModel shows the progress of running downloads. The download listener
// writes into results, it runs inside Process which is called from Update
type downloadModel struct {
	instance *sdk.Instance
	ids      []uint32
	results  map[uint32]int
	width    int
	spinner  spinner.Model
	progress progress.Model
	done     bool
}

func newDownloadModel(instance *sdk.Instance, ids []uint32, results map[uint32]int) *downloadModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return &downloadModel{
		instance: instance,
		ids:      ids,
		results:  results,
		spinner:  s,
		progress: p,
	}
}

func (m *downloadModel) Init() tea.Cmd {
	m.instance.DownloadMods(m.ids...)
	return tea.Batch(m.spinner.Tick, nextFrame())
}

func (m *downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	case frameMsg:
		m.instance.Process()
		progressCmd := m.progress.SetPercent(float64(len(m.results)) / float64(len(m.ids)))
		if len(m.results) == len(m.ids) {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Batch(nextFrame(), progressCmd)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}
		return m, cmd
	}
	return m, nil
}

func (m *downloadModel) View() string {
	total := len(m.ids)
	if m.done {
		return doneStyle.Render(fmt.Sprintf("Done! Downloaded %d mods.", total)) + "\n"
	}

	w := lipgloss.Width(fmt.Sprint(total))
	count := fmt.Sprintf(" %*d/%*d ", w, len(m.results), w, total)
	spin := m.spinner.View() + " "
	prog := m.progress.View()

	running := make([]string, 0, total)
	for _, id := range m.ids {
		if _, ok := m.results[id]; !ok {
			running = append(running, fmt.Sprint(id))
		}
	}
	sort.Strings(running)
	info := subtleStyle.Render("downloading " + strings.Join(running, ", "))

	cellsAvail := m.width - lipgloss.Width(spin+prog+count)
	if cellsAvail < 0 {
		cellsAvail = 0
	}
	info = lipgloss.NewStyle().MaxWidth(cellsAvail).Render(info)

	return spin + prog + count + info + "\n"
}
