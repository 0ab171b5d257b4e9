package session

import "strings"

type InputKind int

const (
	InputText InputKind = iota
	InputConnect
	InputDisconnect
	InputFile
	InputQuit
	InputInvalid
)

// Input is one parsed line from the prompt.
type Input struct {
	Kind InputKind
	Arg  string
}

const commandPrefix = "?"

// ParseInput recognises ?connect <ip>, ?disconnect, ?file <path> and ?quit.
// Anything else, including unknown ?words, is chat text. A known command
// missing its argument is InputInvalid.
func ParseInput(line string) Input {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, commandPrefix) {
		return Input{Kind: InputText, Arg: line}
	}

	word, rest, _ := strings.Cut(trimmed[len(commandPrefix):], " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(word) {
	case "connect":
		if rest == "" {
			return Input{Kind: InputInvalid, Arg: "usage: ?connect <ip>"}
		}
		return Input{Kind: InputConnect, Arg: rest}
	case "disconnect":
		return Input{Kind: InputDisconnect}
	case "file":
		if rest == "" {
			return Input{Kind: InputInvalid, Arg: "usage: ?file <path>"}
		}
		return Input{Kind: InputFile, Arg: rest}
	case "quit":
		return Input{Kind: InputQuit}
	default:
		return Input{Kind: InputText, Arg: line}
	}
}
