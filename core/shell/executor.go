package shell

import "github.com/josephlewis42/lish/commands"

// Execute runs stages in order, each to completion. It stops after the first
// stage that asks to terminate and returns that stage's result, otherwise it
// returns the result of the last stage. No stages gives a zero result.
func Execute(stages []Stage) commands.Result {
	var result commands.Result
	for _, stage := range stages {
		result = commands.Execute(stage.Command, stage.Context)
		if result.Terminate {
			break
		}
	}
	return result
}
