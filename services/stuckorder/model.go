package stuckorder

import (
	"strconv"
	"strings"

	"github.com/MarcGrol/shopbasket/services/stuckorder/stuckorderevents"
)

const listSeparator = ", "

type Summary struct {
	OrderIDs     []int
	OrderNumbers []string
	Count        int
}

func (s Summary) Fields() map[string]string {
	ids := make([]string, 0, len(s.OrderIDs))
	for _, id := range s.OrderIDs {
		ids = append(ids, strconv.Itoa(id))
	}

	return map[string]string{
		stuckorderevents.FieldOrderIDList:     strings.Join(ids, listSeparator),
		stuckorderevents.FieldOrderNumberList: strings.Join(s.OrderNumbers, listSeparator),
		stuckorderevents.FieldOrderCount:      strconv.Itoa(s.Count),
	}
}

type RunResult struct {
	EventName string
	Sent      bool
	Summary   Summary
	Fields    map[string]string
}
