package term

import (
	"os"

	"github.com/fatih/color"
	"github.com/plandex-ai/survey/v2"
	"github.com/plandex-ai/survey/v2/terminal"
)

// SelectManyFromList returns the indexes of the chosen options.
func SelectManyFromList(msg string, options []string) ([]int, error) {
	var selected []int
	err := ask(&survey.MultiSelect{
		Message:  color.New(ColorHiMagenta, color.Bold).Sprint(msg),
		Options:  options,
		PageSize: 15,
	}, &selected)
	return selected, err
}

func ConfirmYesNo(msg string, args ...interface{}) (bool, error) {
	var confirmed bool
	err := ask(&survey.Confirm{
		Message: color.New(ColorHiMagenta, color.Bold).Sprintf(msg, args...),
	}, &confirmed)
	return confirmed, err
}

// ctrl+c at a prompt quits the command quietly
func ask(p survey.Prompt, res interface{}) error {
	err := survey.AskOne(p, res)
	if err == terminal.InterruptErr {
		os.Exit(0)
	}
	return err
}
