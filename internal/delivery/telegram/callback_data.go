package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionOption  = "opt"
	actionNext    = "next"
	actionRestart = "restart"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// buildOptionCallback builds callback data for a click on a rendered option.
func buildOptionCallback(cardID, position int) string {
	return callbackData{
		Action: actionOption,
		Params: []string{strconv.Itoa(cardID), strconv.Itoa(position)},
	}.encode()
}

// buildNextCallback builds callback data for the "next" control of a card.
func buildNextCallback(cardID int) string {
	return callbackData{
		Action: actionNext,
		Params: []string{strconv.Itoa(cardID)},
	}.encode()
}

func buildRestartCallback() string {
	return actionRestart
}
