package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	brand   = lipgloss.Color("#1a472a")
	accent  = lipgloss.Color("#8BC34A")
	danger  = lipgloss.Color("#e53935")
	caution = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#7a8a7a")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(brand).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Width(24)
	focusStyle   = lipgloss.NewStyle().Width(24).Bold(true).Foreground(accent)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle    = lipgloss.NewStyle().Foreground(caution)
	successStyle = lipgloss.NewStyle().Foreground(accent)
	helpStyle    = lipgloss.NewStyle().Foreground(muted)
)

// farmingMethodChoices is the numbered menu of the farming methods prompt.
var farmingMethodChoices = []string{
	"Organic Farming", "Natural Farming", "Integrated Pest Management (IPM)", "Crop Rotation", "Mulching",
	"Drip Irrigation", "Sprinkler System", "Green Manure", "Vermicomposting", "Hydroponics",
}

type prompt struct {
	key         string
	placeholder string
	value       string
}

func interactivePrompts() []prompt {
	return []prompt{
		{key: model.FieldCropName, placeholder: "Wheat"},
		{key: model.FieldQuantity, placeholder: "quintals"},
		{key: model.FieldPrice, placeholder: "per quintal"},
		{key: model.FieldDeliveryDate, placeholder: "DD-MM-YYYY"},
		{key: model.FieldFarmerName},
		{key: model.FieldFarmerLocation, placeholder: "village, district, state"},
		{key: model.FieldFarmerPhone},
		{key: model.FieldFarmerLandSize, placeholder: model.LandSizeUnit},
		{key: model.FieldBusinessName},
		{key: model.FieldBusinessContact, placeholder: "contact person"},
		{key: model.FieldBusinessGST},
		{key: model.FieldBusinessPhone},
		{key: model.FieldBusinessAddress, placeholder: "registered address"},
		{key: model.FieldFarmingMethods, placeholder: "numbers or names, comma separated"},
		{key: model.FieldEquipment},
		{key: model.FieldAdvancePercent, value: strconv.Itoa(contract.DefaultAdvancePercent)},
		{key: model.FieldDeliveryPercent, value: strconv.Itoa(contract.DefaultDeliveryPercent)},
		{key: model.FieldQualityPercent, value: strconv.Itoa(contract.DefaultQualityPercent)},
		{key: model.FieldPaymentMode, placeholder: paymentModeMenu()},
		{key: model.FieldPaymentTerms, placeholder: "additional payment terms"},
	}
}

func paymentModeMenu() string {
	items := make([]string, len(contract.PaymentModes))
	for i, mode := range contract.PaymentModes {
		items[i] = fmt.Sprintf("%d %s", i+1, mode)
	}
	return strings.Join(items, ", ")
}

// parseFarmingMethods maps menu numbers onto method names; anything else is
// kept as typed.
func parseFarmingMethods(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if n, err := strconv.Atoi(item); err == nil && n >= 1 && n <= len(farmingMethodChoices) {
			item = farmingMethodChoices[n-1]
		}
		out = append(out, item)
	}
	return out
}

func parsePaymentMode(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(contract.PaymentModes) {
		return contract.PaymentModes[n-1]
	}
	return s
}

type stage int

const (
	stageForm stage = iota
	stageGenerating
	stageConfirmOpen
	stageDone
)

type generatedMsg struct {
	res  *document.Result
	path string
	err  error
}

type formModel struct {
	ctx     context.Context
	gen     *document.Generator
	outDir  string
	open    func(path string) error
	prompts []prompt
	inputs  []textinput.Model
	focus   int
	stage   stage
	err     string
	result  *document.Result
	path    string
	message string
}

func newFormModel(ctx context.Context, gen *document.Generator, outDir string, open func(string) error) formModel {
	m := formModel{
		ctx:     ctx,
		gen:     gen,
		outDir:  outDir,
		open:    open,
		prompts: interactivePrompts(),
	}
	m.inputs = make([]textinput.Model, len(m.prompts))
	for i, p := range m.prompts {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = p.placeholder
		ti.CharLimit = 200
		ti.Width = 48
		ti.SetValue(p.value)
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stage = stageDone
			return m, tea.Quit
		}
		switch m.stage {
		case stageForm:
			return m.updateForm(msg)
		case stageConfirmOpen:
			return m.updateConfirm(msg)
		}
		return m, nil

	case generatedMsg:
		return m.handleGenerated(msg)
	}

	if m.stage == stageForm {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m formModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case "enter":
		if m.focus == len(m.inputs)-1 {
			m.stage = stageGenerating
			m.err = ""
			return m, m.submit()
		}
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		if err := m.open(m.path); err != nil {
			m.message = errorStyle.Render("Could not open the file: " + err.Error())
		} else {
			m.message = successStyle.Render("Opened " + m.path)
		}
	case "n", "enter", "esc":
		m.message = "Contract saved."
	default:
		return m, nil
	}
	m.stage = stageDone
	return m, tea.Quit
}

func (m formModel) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.stage = stageForm
		m.err = msg.err.Error()
		var verr *model.ValidationError
		if errors.As(msg.err, &verr) {
			for i, p := range m.prompts {
				if p.key == verr.Key {
					cmd := m.setFocus(i)
					return m, cmd
				}
			}
		}
		return m, nil
	}
	m.result = msg.res
	m.path = msg.path
	m.stage = stageConfirmOpen
	return m, nil
}

// setFocus moves the cursor to input i, wrapping at both ends.
func (m *formModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	i = (i%n + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m formModel) rawInput() model.RawInput {
	in := model.RawInput{}
	for i, p := range m.prompts {
		v := strings.TrimSpace(m.inputs[i].Value())
		if v == "" {
			continue
		}
		switch p.key {
		case model.FieldFarmingMethods:
			in.Set(p.key, parseFarmingMethods(v)...)
		case model.FieldPaymentMode:
			in.Set(p.key, parsePaymentMode(v))
		default:
			in.Set(p.key, v)
		}
	}
	return in
}

func (m formModel) submit() tea.Cmd {
	in := m.rawInput()
	ctx, gen, dir := m.ctx, m.gen, m.outDir
	return func() tea.Msg {
		res, err := gen.GenerateInput(ctx, in)
		if err != nil {
			return generatedMsg{err: err}
		}
		paths, err := writeOutputs(dir, res, false)
		if err != nil {
			return generatedMsg{err: err}
		}
		return generatedMsg{res: res, path: paths[0]}
	}
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AGRIANCE CONTRACT GENERATOR"))
	b.WriteString("\n\n")

	switch m.stage {
	case stageGenerating:
		b.WriteString("Generating contract...\n")
		return b.String()
	case stageConfirmOpen:
		rec := m.result.Record
		fmt.Fprintf(&b, "Contract %s generated (%d pages, total %s).\n", rec.ContractNumber, m.result.Pages, contract.FormatMoney(rec.TotalValue))
		for _, w := range rec.Warnings {
			b.WriteString(warnStyle.Render("warning: "+w) + "\n")
		}
		b.WriteString(successStyle.Render("Saved as: "+m.path) + "\n\n")
		b.WriteString("Open the contract now? (y/n) ")
		return b.String()
	case stageDone:
		if m.message != "" {
			b.WriteString(m.message + "\n")
		}
		return b.String()
	}

	for i, p := range m.prompts {
		style := labelStyle
		if i == m.focus {
			style = focusStyle
		}
		b.WriteString(style.Render(model.DisplayName(p.key)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if p.key == model.FieldFarmingMethods && i == m.focus {
			for n, method := range farmingMethodChoices {
				b.WriteString(helpStyle.Render(fmt.Sprintf("%26d. %s", n+1, method)) + "\n")
			}
		}
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab/enter next field • shift+tab previous • enter on the last field generates • ctrl+c quit"))
	return b.String()
}

func newInteractiveCmd(a *app) *cobra.Command {
	var out string
	var extended bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Fill in a contract in a terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.generator(extended)
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.Document.OutputDir
			}
			m := newFormModel(cmd.Context(), gen, out, a.open)
			p := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&extended, "extended", false, "add the Governing Law and Entire Agreement clauses")
	return cmd
}
