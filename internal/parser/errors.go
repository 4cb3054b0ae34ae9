package parser

import (
	"fmt"
	"strings"
)

// MapError takes a raw input and a participle error, and returns a
// human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	parts := strings.Fields(strings.ToLower(input))
	cmd := parts[0]
	if len(parts) > 1 {
		// A leading color is allowed before most commands.
		switch parts[1] {
		case "roll", "build", "discard", "robber", "steal", "trade", "buy", "play", "end":
			cmd = parts[1]
		}
	}

	switch cmd {
	case "roll":
		return fmt.Errorf("The command roll must be: [color] roll [die die]")
	case "build":
		return fmt.Errorf("The command build must be: [color] build <settlement|city|road> <location>")
	case "discard":
		return fmt.Errorf("The command discard must be: <color> discard <count resource>...")
	case "robber":
		return fmt.Errorf("The command robber must be: [color] robber <tile>")
	case "steal":
		return fmt.Errorf("The command steal must be: [color] steal <color|none>")
	case "trade":
		return fmt.Errorf("The command trade must be: [color] trade <count resource>... for <count resource>... <port ratio|with color>")
	case "buy":
		return fmt.Errorf("The command buy must be: [color] buy")
	case "play":
		return fmt.Errorf("The command play must be: [color] play <knight | monopoly resource | plenty r1 r2 | roads e1 e2 | point>")
	case "end":
		return fmt.Errorf("The command end must be: [color] end <turn|game>")
	case "start", "undo", "redo":
		return fmt.Errorf("The command %s takes no arguments", cmd)
	}

	return fmt.Errorf("I wasn't able to understand your command")
}
