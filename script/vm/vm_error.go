package vm

import "fmt"

func (e Error) Error() string {
	var scriptName, action string
	if e.Script != "" {
		scriptName = fmt.Sprintf("(SCRIPT) %s ", e.Script)
	}
	if e.Action != "" {
		action = fmt.Sprintf("(ACTION) %s ", e.Action)
	}
	return fmt.Sprintf("strategy script: %s%s%v", action, scriptName, e.Cause)
}

// Unwrap returns e.Cause meeting errors interface requirements.
func (e Error) Unwrap() error {
	return e.Cause
}
