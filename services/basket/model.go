package basket

import (
	"time"
)

type Property struct {
	Code  string
	Name  string
	Value string
}

type BasketItem struct {
	ID          int
	ProductID   int
	Name        string
	Price       float64
	VATRate     float64
	VATIncluded bool
	Quantity    float64
	Currency    string
	CustomPrice bool
	Props       []Property
}

// PropsMap flattens the properties into code -> value
func (i BasketItem) PropsMap() map[string]string {
	props := map[string]string{}
	for _, p := range i.Props {
		props[p.Code] = p.Value
	}
	return props
}

func (i BasketItem) hasConfiguration(productID int, props map[string]string) bool {
	if i.ProductID != productID {
		return false
	}
	current := i.PropsMap()
	if len(current) != len(props) {
		return false
	}
	for code, value := range props {
		if v, found := current[code]; !found || v != value {
			return false
		}
	}
	return true
}

// Basket holds the items of a single visitor (fuser) on a single site
type Basket struct {
	UID          string
	FuserUID     string
	SiteID       string
	Items        []BasketItem `datastore:",noindex"`
	NextItemID   int
	CreatedAt    time.Time
	LastModified *time.Time
}

func (b Basket) GetItemByID(id int) (BasketItem, bool) {
	for _, item := range b.Items {
		if item.ID == id {
			return item, true
		}
	}
	return BasketItem{}, false
}

func (b *Basket) addItem(item BasketItem) BasketItem {
	b.NextItemID++
	item.ID = b.NextItemID
	b.Items = append(b.Items, item)
	return item
}

func (b *Basket) replaceItem(item BasketItem) {
	for idx := range b.Items {
		if b.Items[idx].ID == item.ID {
			b.Items[idx] = item
			return
		}
	}
}

func (b *Basket) removeItem(id int) bool {
	for idx := range b.Items {
		if b.Items[idx].ID == id {
			b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
			return true
		}
	}
	return false
}

func composeBasketUID(fuserUID string, siteID string) string {
	return fuserUID + "_" + siteID
}

type itemView struct {
	ID        int               `json:"id"`
	ProductID int               `json:"productId"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	VATPrice  float64           `json:"vatPrice"`
	Quantity  float64           `json:"quantity"`
	Sum       float64           `json:"sum"`
	Currency  string            `json:"currency"`
	Props     map[string]string `json:"props"`
}

func toItemView(item BasketItem) itemView {
	return itemView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		VATPrice:  item.PriceWithVAT(),
		Quantity:  item.Quantity,
		Sum:       item.FinalPrice(),
		Currency:  item.Currency,
		Props:     item.PropsMap(),
	}
}

func toItemViews(items []BasketItem) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}
	return views
}

type createdResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}
