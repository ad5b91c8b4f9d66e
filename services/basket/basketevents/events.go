package basketevents

const (
	TopicName       = "basket"
	itemAddedName   = TopicName + ".item.added"
	itemUpdatedName = TopicName + ".item.updated"
	itemDeletedName = TopicName + ".item.deleted"
)

type BasketItemAdded struct {
	BasketUID string
	ItemID    int
	ProductID int
	Quantity  float64
}

func (e BasketItemAdded) GetEventTypeName() string {
	return itemAddedName
}

func (e BasketItemAdded) GetAggregateName() string {
	return e.BasketUID
}

type BasketItemUpdated struct {
	BasketUID   string
	ItemID      int
	Name        string
	Quantity    float64
	Price       float64
	CustomPrice bool
}

func (e BasketItemUpdated) GetEventTypeName() string {
	return itemUpdatedName
}

func (e BasketItemUpdated) GetAggregateName() string {
	return e.BasketUID
}

type BasketItemDeleted struct {
	BasketUID string
	ItemID    int
}

func (e BasketItemDeleted) GetEventTypeName() string {
	return itemDeletedName
}

func (e BasketItemDeleted) GetAggregateName() string {
	return e.BasketUID
}
