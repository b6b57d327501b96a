package logging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/pontaoski/nuogo/types"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgCyan
)

// PrintErrorMessage prints any error under a tag.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintSuccessMessage prints a message under a tag.
func PrintSuccessMessage(tag, msg string) {
	SuccessStyleBG.Print(tag)
	SuccessColorFG.Println(" " + msg)
}

// DisplayCompileMessage shows message under a banner and, when pos is
// known, the offending line of source.
func DisplayCompileMessage(title, message string, pos *types.Position, source string) {
	fmt.Print("-- ")
	ErrorStyleBG.Print(title)
	if pos != nil {
		fmt.Print(" ")
		InfoColorFG.Print(filepath.Base(pos.Filename))
		fmt.Printf(":%d:%d", pos.Line, pos.Column)
	}
	fmt.Println()
	fmt.Println(message)

	if pos == nil {
		return
	}
	if snippet := Snippet(source, *pos); snippet != "" {
		fmt.Println()
		fmt.Println(snippet)
	}
}

// Snippet renders the source line at pos with a caret under its column. It
// returns an empty string if the line doesn't exist.
func Snippet(source string, pos types.Position) string {
	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")

	// keep tabs in the caret's indentation so it lines up with the source
	col := pos.Column - 1
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}
	indent := []byte(line[:col])
	for i, c := range indent {
		if c != '\t' {
			indent[i] = ' '
		}
	}

	number := fmt.Sprint(pos.Line)
	gutter := strings.Repeat(" ", len(number))
	return fmt.Sprintf("%s | %s\n%s | %s^", number, line, gutter, indent)
}
