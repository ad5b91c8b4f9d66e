package stuckorderevents

const (
	TopicName = "notification"

	DefaultEventName = "STUCK_NEW_ORDERS"

	FieldOrderIDList     = "ORDER_ID_LIST"
	FieldOrderNumberList = "ORDER_NUMBER_LIST"
	FieldOrderCount      = "ORDER_COUNT"
)

// StuckOrdersDetected asks the mailer to send the mail template named EventName, filled with Fields
type StuckOrdersDetected struct {
	EventName string
	Fields    map[string]string
}

func (e StuckOrdersDetected) GetEventTypeName() string {
	return e.EventName
}

func (e StuckOrdersDetected) GetAggregateName() string {
	return e.EventName
}
