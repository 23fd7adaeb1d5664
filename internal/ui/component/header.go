package component

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/robgonnella/wisp/internal/ui/style"
)

const appText = `
██╗    ██╗██╗███████╗██████╗
██║    ██║██║██╔════╝██╔══██╗
██║ █╗ ██║██║███████╗██████╔╝
██║███╗██║██║╚════██║██╔═══╝
╚███╔███╔╝██║███████║██║
 ╚══╝╚══╝ ╚═╝╚══════╝╚═╝`

type Header struct {
	root     *tview.Flex
	progress *tview.TextView
	legend   *tview.TextView
	total    int
	ok       int
	failed   int
	finished bool
}

func NewHeader(input string) *Header {
	h := &Header{}

	h.root = tview.NewFlex().SetDirection(tview.FlexColumn)

	title := tview.NewTextView().
		SetText(appText).
		SetTextColor(style.ColorPurple)

	info := tview.NewFlex().SetDirection(tview.FlexRow)

	source := tview.NewTextView().
		SetText(fmt.Sprintf("Input: %s", input)).
		SetTextColor(style.ColorLightGreen).
		SetTextAlign(tview.AlignLeft)

	h.progress = tview.NewTextView().
		SetTextColor(style.ColorWhite).
		SetTextAlign(tview.AlignLeft)

	h.legend = tview.NewTextView().
		SetTextColor(style.ColorOrange).
		SetTextAlign(tview.AlignLeft)

	info.AddItem(tview.NewTextView().SetText(""), 0, 1, false)
	info.AddItem(source, 1, 1, false)
	info.AddItem(h.progress, 1, 1, false)
	info.AddItem(h.legend, 1, 1, false)

	h.root.AddItem(title, 34, 1, false)
	h.root.AddItem(info, 0, 1, false)

	h.render()

	return h
}

func (h *Header) Primitive() tview.Primitive {
	return h.root
}

// SetTotal sets the number of devices in the run
func (h *Header) SetTotal(total int) {
	h.total = total
	h.render()
}

// Count tallies one completed device
func (h *Header) Count(ok bool) {
	if ok {
		h.ok++
	} else {
		h.failed++
	}

	h.render()
}

// SetFinished switches the legend to the exit hint
func (h *Header) SetFinished() {
	h.finished = true
	h.render()
}

// ProgressText returns the current counter line
func (h *Header) ProgressText() string {
	return h.progress.GetText(true)
}

func (h *Header) render() {
	h.progress.SetText(
		fmt.Sprintf(
			"Devices: %d/%d  OK: %d  FAIL: %d",
			h.ok+h.failed,
			h.total,
			h.ok,
			h.failed,
		),
	)

	if h.finished {
		h.legend.SetText("run finished, press q to exit")
	} else {
		h.legend.SetText("ctrl+c - cancel run")
	}
}
